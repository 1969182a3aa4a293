package inject

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizpilot/internal/page"
)

// EditableAdapter drives a bare contenteditable region, the fallback
// editor some platforms use instead of a real rich-text widget.
type EditableAdapter struct{}

func (a *EditableAdapter) Name() string { return "generic-editable" }

const editableTargetScript = `(el.isContentEditable || el.getAttribute('contenteditable') === 'true')
	? el
	: (el.querySelector ? el.querySelector('[contenteditable=true], [contenteditable=""]') : null)`

func (a *EditableAdapter) Detect(ctx context.Context, w page.Widget) (bool, error) {
	var found bool
	script := fmt.Sprintf(`(function () { return !!(%s); })()`, editableTargetScript)
	if err := w.Eval(ctx, script, &found); err != nil {
		return false, err
	}
	return found, nil
}

func (a *EditableAdapter) Write(ctx context.Context, w page.Widget, values []string) error {
	script := fmt.Sprintf(`(function () {
	var target = %s;
	if (!target) return false;
	target.textContent = %s;
	target.dispatchEvent(new Event('input', { bubbles: true }));
	target.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`, editableTargetScript, jsString(joined(values)))

	var ok bool
	if err := w.Eval(ctx, script, &ok); err != nil {
		return err
	}
	if !ok {
		return errors.New("editable region not reachable")
	}
	return nil
}

func (a *EditableAdapter) Read(ctx context.Context, w page.Widget) (string, error) {
	script := fmt.Sprintf(`(function () {
	var target = %s;
	return target ? target.textContent : '';
})()`, editableTargetScript)

	var content string
	if err := w.Eval(ctx, script, &content); err != nil {
		return "", err
	}
	return content, nil
}

func (a *EditableAdapter) Expected(values []string) string { return joined(values) }
