// Package inject writes parsed answers into a question's answer widget
// and verifies them by reading the content back. Widgets differ wildly
// between platforms, so each editor family gets an Adapter; detection
// runs in a fixed order and the first adapter that recognizes the
// widget owns it.
package inject

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abhisek/quizpilot/internal/page"
)

// unitSep joins multi-slot widget content for verification. It never
// appears in real answers, so joined readbacks compare exactly.
const unitSep = "\x1f"

// Adapter drives one editor family through the widget's script handle.
type Adapter interface {
	Name() string

	// Detect reports whether this adapter recognizes the widget.
	Detect(ctx context.Context, w page.Widget) (bool, error)

	// Write puts the answer values into the widget and fires the events
	// the page needs to notice the change.
	Write(ctx context.Context, w page.Widget, values []string) error

	// Read returns the widget's current content in the same encoding
	// Expected produces for the given values.
	Read(ctx context.Context, w page.Widget) (string, error)

	// Expected renders what Read should return after Write(values).
	Expected(values []string) string
}

// DefaultAdapters returns the adapters in detection order. Code
// editors are probed first because their host containers also look
// like generic editables; the plain adapter is the catch-all last.
func DefaultAdapters() []Adapter {
	return []Adapter{
		&CodeEditorAdapter{},
		&RichTextAdapter{},
		&EditableAdapter{},
		&PlainAdapter{},
	}
}

// jsString renders a Go string as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// jsStrings renders a Go slice as a JavaScript array literal.
func jsStrings(values []string) string {
	b, _ := json.Marshal(values)
	return string(b)
}

// joined is the single-surface rendering of a value list.
func joined(values []string) string {
	return strings.Join(values, "\n")
}
