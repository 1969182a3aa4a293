package inject

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizpilot/internal/page"
)

// PlainAdapter drives native form controls: a radio group for choice
// answers, a blank-input group for fill answers, and a bare textarea
// or text input for free text. It is the last adapter probed.
//
// A blank-input group counts as one widget; Write fans the values out
// across the inputs in document order, and Read joins the inputs back
// with the unit separator so verification compares slot by slot.
type PlainAdapter struct{}

func (a *PlainAdapter) Name() string { return "plain" }

// blankGroupScript selects the blank-input group. The dedicated class
// wins outright; generic text inputs are only a fallback when no
// classed blank exists, so a stray text input on the page cannot add a
// phantom slot to the readback. Write and Read must embed the same
// snippet or verification compares different input sets.
const blankGroupScript = `var blanks = [];
	if (el.querySelectorAll) {
		blanks = el.querySelectorAll('input.question-blank-input');
		if (blanks.length === 0) blanks = el.querySelectorAll('input[type=text]');
	}`

const plainDetectScript = `(function () {
	if (el.matches && (el.matches('textarea') || el.matches('input'))) return true;
	if (!el.querySelector) return false;
	return !!(el.querySelector('input[type=radio]') ||
		el.querySelector('input.question-blank-input') ||
		el.querySelector('textarea') ||
		el.querySelector('input[type=text]'));
})()`

func (a *PlainAdapter) Detect(ctx context.Context, w page.Widget) (bool, error) {
	var found bool
	if err := w.Eval(ctx, plainDetectScript, &found); err != nil {
		return false, err
	}
	return found, nil
}

func (a *PlainAdapter) Write(ctx context.Context, w page.Widget, values []string) error {
	script := fmt.Sprintf(`(function () {
	var vals = %s;
	if (vals.length === 0) return false;
	var fire = function (n) {
		n.dispatchEvent(new Event('input', { bubbles: true }));
		n.dispatchEvent(new Event('change', { bubbles: true }));
	};
	var radios = el.querySelectorAll ? el.querySelectorAll('input[type=radio]') : [];
	if (radios.length > 0) {
		var byValue = el.querySelector('input[type=radio][value="' + vals[0] + '"]');
		if (byValue) {
			byValue.click();
			return true;
		}
		var idx = vals[0].charCodeAt(0) - 65;
		if (idx < 0 || idx >= radios.length) return false;
		radios[idx].click();
		return true;
	}
	%s
	if (blanks.length > 0) {
		if (blanks.length < vals.length) return false;
		for (var i = 0; i < blanks.length; i++) {
			blanks[i].value = (i < vals.length) ? vals[i] : '';
			fire(blanks[i]);
		}
		return true;
	}
	var area = (el.matches && (el.matches('textarea') || el.matches('input')))
		? el : (el.querySelector ? el.querySelector('textarea') : null);
	if (!area) return false;
	area.value = vals.join('\n');
	fire(area);
	return true;
})()`, jsStrings(values), blankGroupScript)

	var ok bool
	if err := w.Eval(ctx, script, &ok); err != nil {
		return err
	}
	if !ok {
		return errors.New("no writable form control for the answer")
	}
	return nil
}

// The checked radio's own value letter takes precedence over its
// position, mirroring the value-first selection in Write.
var plainReadScript = fmt.Sprintf(`(function () {
	var radios = el.querySelectorAll ? el.querySelectorAll('input[type=radio]') : [];
	if (radios.length > 0) {
		for (var i = 0; i < radios.length; i++) {
			if (radios[i].checked) {
				var v = (radios[i].value || '').trim().toUpperCase();
				if (v.length === 1 && v >= 'A' && v <= 'Z') return v;
				return String.fromCharCode(65 + i);
			}
		}
		return '';
	}
	%s
	if (blanks.length > 0) {
		var out = [];
		for (var j = 0; j < blanks.length; j++) out.push(blanks[j].value);
		return out.join('\u001f');
	}
	var area = (el.matches && (el.matches('textarea') || el.matches('input')))
		? el : (el.querySelector ? el.querySelector('textarea') : null);
	return area ? area.value : '';
})()`, blankGroupScript)

func (a *PlainAdapter) Read(ctx context.Context, w page.Widget) (string, error) {
	var content string
	if err := w.Eval(ctx, plainReadScript, &content); err != nil {
		return "", err
	}
	return content, nil
}

// Expected joins per-slot values with the unit separator to match the
// blank-group readback; single values pass through unchanged.
func (a *PlainAdapter) Expected(values []string) string {
	return strings.Join(values, unitSep)
}
