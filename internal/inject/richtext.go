package inject

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizpilot/internal/page"
)

// RichTextAdapter drives a TinyMCE-style rich-text editor through its
// page-level API. Content is written as text and verified through the
// editor's own text rendering, so markup the editor adds around the
// answer doesn't fail verification.
type RichTextAdapter struct{}

func (a *RichTextAdapter) Name() string { return "rich-text" }

const richTextDetectScript = `(function () {
	try {
		if (window.tinymce && window.tinymce.activeEditor) return true;
	} catch (e) {}
	if (!el.classList) return false;
	return el.classList.contains('tox-tinymce') || el.classList.contains('mce-tinymce');
})()`

func (a *RichTextAdapter) Detect(ctx context.Context, w page.Widget) (bool, error) {
	var found bool
	if err := w.Eval(ctx, richTextDetectScript, &found); err != nil {
		return false, err
	}
	return found, nil
}

func (a *RichTextAdapter) Write(ctx context.Context, w page.Widget, values []string) error {
	script := fmt.Sprintf(`(function () {
	if (!window.tinymce || !window.tinymce.activeEditor) return false;
	var ed = window.tinymce.activeEditor;
	ed.setContent(%s);
	ed.fire('change');
	return true;
})()`, jsString(joined(values)))

	var ok bool
	if err := w.Eval(ctx, script, &ok); err != nil {
		return err
	}
	if !ok {
		return errors.New("rich text editor not reachable")
	}
	return nil
}

const richTextReadScript = `(function () {
	if (!window.tinymce || !window.tinymce.activeEditor) return '';
	return window.tinymce.activeEditor.getContent({ format: 'text' });
})()`

func (a *RichTextAdapter) Read(ctx context.Context, w page.Widget) (string, error) {
	var content string
	if err := w.Eval(ctx, richTextReadScript, &content); err != nil {
		return "", err
	}
	return content, nil
}

func (a *RichTextAdapter) Expected(values []string) string { return joined(values) }
