// Package ocr recognizes formula images into text notation. A
// Recognizer wraps a Backend with a content-hash cache so the same
// rendered image is only ever sent once, even across questions.
package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrUnavailable reports that the recognition backend cannot be
// reached. Callers degrade to a bare image marker rather than failing
// the question.
var ErrUnavailable = errors.New("ocr: backend unavailable")

// Backend turns one rendered image into notation.
type Backend interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Recognizer memoizes a Backend by image content hash. Concurrent
// requests for the same image coalesce into a single backend call.
type Recognizer struct {
	backend Backend

	mu    sync.Mutex
	cache map[string]string
	group singleflight.Group
}

func NewRecognizer(b Backend) *Recognizer {
	return &Recognizer{
		backend: b,
		cache:   make(map[string]string),
	}
}

// Recognize returns the notation for image, serving repeats from the
// cache. Failed recognitions are not cached; a later call retries the
// backend.
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	sum := sha256.Sum256(image)
	key := hex.EncodeToString(sum[:])

	r.mu.Lock()
	if notation, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return notation, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(key, func() (any, error) {
		notation, err := r.backend.Recognize(ctx, image)
		if err != nil {
			return "", err
		}
		r.mu.Lock()
		r.cache[key] = notation
		r.mu.Unlock()
		return notation, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// RecognizeAll resolves a batch of images with bounded concurrency.
// Per-image backend failures degrade to an empty notation; the only
// error returned is context cancellation.
func (r *Recognizer) RecognizeAll(ctx context.Context, images [][]byte, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 4
	}
	notations := make([]string, len(images))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, img := range images {
		if len(img) == 0 {
			continue
		}
		g.Go(func() error {
			notation, err := r.Recognize(ctx, img)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return nil
			}
			notations[i] = notation
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return notations, nil
}
