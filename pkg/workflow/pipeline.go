// Package workflow composes model calls into typed sequential pipelines.
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/Ingenimax/multimodal-go/pkg/logging"
)

// Stage turns a typed input into a typed output
type Stage[I, O any] func(ctx context.Context, in I) (O, error)

// Then runs a and feeds its output to b. b never runs when a fails, and
// a's error is returned unchanged.
func Then[A, B, C any](a Stage[A, B], b Stage[B, C]) Stage[A, C] {
	return func(ctx context.Context, in A) (C, error) {
		mid, err := a(ctx, in)
		if err != nil {
			var zero C
			return zero, err
		}
		return b(ctx, mid)
	}
}

// StageRecord describes one executed stage
type StageRecord struct {
	Stage     string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
}

// History collects stage records for one pipeline run
type History struct {
	mu      sync.Mutex
	records []StageRecord
}

// Records returns a copy of the collected records in execution order
func (h *History) Records() []StageRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]StageRecord(nil), h.records...)
}

func (h *History) add(r StageRecord) {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
}

// Named wraps stage so every run is logged and recorded in history.
// The wrapped stage's result and error pass through untouched.
func Named[I, O any](name string, history *History, logger logging.Logger, stage Stage[I, O]) Stage[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		start := time.Now()
		logger.Debug(ctx, "Starting stage", map[string]interface{}{"stage": name})

		out, err := stage(ctx, in)

		record := StageRecord{Stage: name, StartedAt: start, Duration: time.Since(start), Err: err}
		if history != nil {
			history.add(record)
		}
		if err != nil {
			logger.Error(ctx, "Stage failed", map[string]interface{}{
				"stage": name,
				"error": err.Error(),
			})
			return out, err
		}
		logger.Debug(ctx, "Stage completed", map[string]interface{}{
			"stage":      name,
			"durationMs": record.Duration.Milliseconds(),
		})
		return out, nil
	}
}
