package browser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/abhisek/quizpilot/internal/page"
)

// questionSource is a page.Source bound to one navigation generation.
type questionSource struct {
	sess *Session
	gen  int64
	id   string
	kind string
}

func (q *questionSource) ID() string   { return q.id }
func (q *questionSource) Kind() string { return q.kind }

func (q *questionSource) HTML(ctx context.Context) (string, error) {
	if q.gen != q.sess.gen.Load() {
		return "", page.ErrDetached
	}

	var res evalResult
	script := fmt.Sprintf(`(function () {
	var el = document.querySelector(%s);
	if (!el) return { detached: true };
	return { value: el.outerHTML };
})()`, jsQuote(selQuestionItem))
	if err := q.sess.evalJSON(ctx, script, &res); err != nil {
		return "", err
	}
	if res.Detached {
		return "", page.ErrDetached
	}
	var markup string
	if err := json.Unmarshal(res.Value, &markup); err != nil {
		return "", fmt.Errorf("decode question markup: %w", err)
	}
	return markup, nil
}

// ImageBytes re-renders the referenced image through a canvas and
// returns its PNG bytes. Works for same-origin images, which is all
// the quiz platform embeds.
func (q *questionSource) ImageBytes(ctx context.Context, ref string) ([]byte, error) {
	if q.gen != q.sess.gen.Load() {
		return nil, page.ErrDetached
	}

	var res evalResult
	script := fmt.Sprintf(`(function () {
	var img = document.querySelector('img[src=' + JSON.stringify(%s) + ']');
	if (!img) return { detached: true };
	var canvas = document.createElement('canvas');
	canvas.width = img.naturalWidth || img.width;
	canvas.height = img.naturalHeight || img.height;
	if (canvas.width === 0 || canvas.height === 0) return { value: '' };
	try {
		canvas.getContext('2d').drawImage(img, 0, 0);
		return { value: canvas.toDataURL('image/png').split(',')[1] };
	} catch (e) {
		return { value: '' };
	}
})()`, jsQuote(ref))
	if err := q.sess.evalJSON(ctx, script, &res); err != nil {
		return nil, err
	}
	if res.Detached {
		return nil, page.ErrDetached
	}
	var b64 string
	if err := json.Unmarshal(res.Value, &b64); err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	if b64 == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode image bytes: %w", err)
	}
	return raw, nil
}

// widget is a page.Widget addressing one element by selector, bound to
// a navigation generation.
type widget struct {
	sess *Session
	gen  int64
	sel  string
}

// Eval runs script with the widget element bound as `el`. A missing
// element or a stale generation reports page.ErrDetached.
func (w *widget) Eval(ctx context.Context, script string, out any) error {
	if w.gen != w.sess.gen.Load() {
		return page.ErrDetached
	}

	wrapped := fmt.Sprintf(`(function () {
	var el = document.querySelector(%s);
	if (!el) return { detached: true };
	return { value: (function (el) { return (%s); })(el) };
})()`, jsQuote(w.sel), script)

	var res evalResult
	if err := w.sess.evalJSON(ctx, wrapped, &res); err != nil {
		return err
	}
	if res.Detached {
		return page.ErrDetached
	}
	if out == nil || len(res.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Value, out); err != nil {
		return fmt.Errorf("decode widget result: %w", err)
	}
	return nil
}

// evalResult is the wrapper every handle script returns.
type evalResult struct {
	Detached bool            `json:"detached"`
	Value    json.RawMessage `json:"value"`
}
