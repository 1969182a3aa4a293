package inject

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizpilot/internal/page"
)

// CodeEditorAdapter drives a Monaco-style code editor. The editor
// often lives inside a same-origin iframe; scripts resolve the hosting
// window from the widget element before touching the editor API.
type CodeEditorAdapter struct{}

func (a *CodeEditorAdapter) Name() string { return "code-editor" }

const codeEditorDetectScript = `(function () {
	try {
		var w = (el.tagName === 'IFRAME') ? el.contentWindow : window;
		if (w && w.monaco && w.monaco.editor && w.monaco.editor.getModels().length > 0) {
			return true;
		}
	} catch (e) {
		return false;
	}
	if (el.classList && el.classList.contains('monaco-editor')) return true;
	return !!(el.querySelector && el.querySelector('.monaco-editor'));
})()`

func (a *CodeEditorAdapter) Detect(ctx context.Context, w page.Widget) (bool, error) {
	var found bool
	if err := w.Eval(ctx, codeEditorDetectScript, &found); err != nil {
		return false, err
	}
	return found, nil
}

func (a *CodeEditorAdapter) Write(ctx context.Context, w page.Widget, values []string) error {
	script := fmt.Sprintf(`(function () {
	var w = (el.tagName === 'IFRAME') ? el.contentWindow : window;
	if (!w || !w.monaco) return false;
	var models = w.monaco.editor.getModels();
	if (models.length === 0) return false;
	models[0].setValue(%s);
	return true;
})()`, jsString(joined(values)))

	var ok bool
	if err := w.Eval(ctx, script, &ok); err != nil {
		return err
	}
	if !ok {
		return errors.New("code editor model not reachable")
	}
	return nil
}

const codeEditorReadScript = `(function () {
	var w = (el.tagName === 'IFRAME') ? el.contentWindow : window;
	if (!w || !w.monaco) return '';
	var models = w.monaco.editor.getModels();
	return models.length > 0 ? models[0].getValue() : '';
})()`

func (a *CodeEditorAdapter) Read(ctx context.Context, w page.Widget) (string, error) {
	var content string
	if err := w.Eval(ctx, codeEditorReadScript, &content); err != nil {
		return "", err
	}
	return content, nil
}

func (a *CodeEditorAdapter) Expected(values []string) string { return joined(values) }
