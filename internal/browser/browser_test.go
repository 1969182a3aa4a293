package browser

import (
	"context"
	"testing"
	"time"
)

func TestIsLastQuestionDialog(t *testing.T) {
	cases := []struct {
		msg  string
		want bool
	}{
		{"已经是最后一题", true},
		{"This is the LAST QUESTION of the quiz.", true},
		{"没有下一题了", true},
		{"确认保存吗？", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isLastQuestionDialog(tc.msg); got != tc.want {
			t.Errorf("isLastQuestionDialog(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestJSQuote(t *testing.T) {
	got := jsQuote(`img[src="x"]` + "\n")
	if got != `"img[src=\"x\"]\n"` {
		t.Errorf("unexpected literal: %s", got)
	}
}

func TestMergeContextCallerCancel(t *testing.T) {
	tab := context.Background()
	caller, cancelCaller := context.WithCancel(context.Background())

	opCtx, cleanup := mergeContext(tab, caller, time.Minute)
	defer cleanup()

	cancelCaller()
	select {
	case <-opCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("operation context not cancelled with caller")
	}
}
