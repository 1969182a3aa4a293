package ocr

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type countingBackend struct {
	calls    atomic.Int32
	notation string
	err      error
}

func (b *countingBackend) Recognize(_ context.Context, _ []byte) (string, error) {
	b.calls.Add(1)
	if b.err != nil {
		return "", b.err
	}
	return b.notation, nil
}

func TestRecognizeMemoizesByHash(t *testing.T) {
	backend := &countingBackend{notation: `\frac{a}{b}`}
	r := NewRecognizer(backend)
	ctx := context.Background()

	img := []byte("png-bytes")
	for i := 0; i < 3; i++ {
		got, err := r.Recognize(ctx, img)
		if err != nil {
			t.Fatalf("recognize: %v", err)
		}
		if got != `\frac{a}{b}` {
			t.Errorf("unexpected notation: %q", got)
		}
	}
	if n := backend.calls.Load(); n != 1 {
		t.Errorf("expected 1 backend call, got %d", n)
	}

	if _, err := r.Recognize(ctx, []byte("other-bytes")); err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if n := backend.calls.Load(); n != 2 {
		t.Errorf("expected 2 backend calls after new image, got %d", n)
	}
}

func TestRecognizeCoalescesConcurrent(t *testing.T) {
	release := make(chan struct{})
	backend := &blockingBackend{
		started:  make(chan struct{}),
		release:  release,
		notation: "x^2",
	}
	r := NewRecognizer(backend)
	img := []byte("same-image")

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = r.Recognize(context.Background(), img)
		}()
	}
	backend.waitForFirst()
	close(release)
	wg.Wait()

	if n := backend.calls.Load(); n != 1 {
		t.Errorf("expected 1 coalesced backend call, got %d", n)
	}
	for i, got := range results {
		if got != "x^2" {
			t.Errorf("result %d: %q", i, got)
		}
	}
}

type blockingBackend struct {
	calls    atomic.Int32
	once     sync.Once
	started  chan struct{}
	release  chan struct{}
	notation string
}

func (b *blockingBackend) waitForFirst() { <-b.started }

func (b *blockingBackend) Recognize(_ context.Context, _ []byte) (string, error) {
	b.calls.Add(1)
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.notation, nil
}

func TestRecognizeErrorNotCached(t *testing.T) {
	backend := &countingBackend{err: ErrUnavailable}
	r := NewRecognizer(backend)
	ctx := context.Background()

	if _, err := r.Recognize(ctx, []byte("img")); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	backend.err = nil
	backend.notation = "ok"
	got, err := r.Recognize(ctx, []byte("img"))
	if err != nil {
		t.Fatalf("recognize after recovery: %v", err)
	}
	if got != "ok" {
		t.Errorf("unexpected notation: %q", got)
	}
	if n := backend.calls.Load(); n != 2 {
		t.Errorf("expected failed call to be retried, got %d calls", n)
	}
}

func TestRecognizeAllDegradesOnFailure(t *testing.T) {
	backend := &countingBackend{err: ErrUnavailable}
	r := NewRecognizer(backend)

	notations, err := r.RecognizeAll(context.Background(), [][]byte{
		[]byte("a"), nil, []byte("b"),
	}, 2)
	if err != nil {
		t.Fatalf("recognize all: %v", err)
	}
	if len(notations) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(notations))
	}
	for i, n := range notations {
		if n != "" {
			t.Errorf("slot %d: expected empty notation, got %q", i, n)
		}
	}
}
