// Package throttle caps transfer bandwidth with a [rate.Limiter]
// token bucket accounted in bytes rather than requests.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
)

// Config defines the throttler's sustained rate and burst capacity,
// both in bytes.
type Config struct {
	BytesPerSec int `validate:"gt=0"`
	Burst       int `validate:"gt=0"`
}

// NewLimiter builds a byte-accounted token bucket from cfg.
func NewLimiter(cfg Config) (*rate.Limiter, error) {
	if cfg.BytesPerSec <= 0 || cfg.Burst <= 0 {
		return nil, fmt.Errorf("bytesPerSec[%d] and burst[%d] %w", cfg.BytesPerSec, cfg.Burst, ErrMustNotBeZero)
	}

	return rate.NewLimiter(rate.Limit(cfg.BytesPerSec), cfg.Burst), nil
}

// reader is an io.Reader that charges every byte read against the limiter.
type reader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

// NewReader wraps r so that reads are paced by limiter. ctx bounds the
// waits; its cancellation surfaces as a read error.
func NewReader(ctx context.Context, r io.Reader, limiter *rate.Limiter) io.Reader {
	return &reader{ctx: ctx, r: r, limiter: limiter}
}

func (t *reader) Read(p []byte) (int, error) {
	// A single read can never be charged more tokens than the bucket
	// can hold.
	if burst := t.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}

	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.limiter.WaitN(t.ctx, n); werr != nil {
			return n, fmt.Errorf("%w: %w", ErrWaitingFailed, werr)
		}
	}

	return n, err
}

// writer is an io.Writer that charges every byte written against the limiter.
type writer struct {
	ctx     context.Context
	w       io.Writer
	limiter *rate.Limiter
}

// NewWriter wraps w so that writes are paced by limiter. ctx bounds
// the waits; its cancellation surfaces as a write error.
func NewWriter(ctx context.Context, w io.Writer, limiter *rate.Limiter) io.Writer {
	return &writer{ctx: ctx, w: w, limiter: limiter}
}

func (t *writer) Write(p []byte) (int, error) {
	var written int
	for len(p) > 0 {
		chunk := p
		if burst := t.limiter.Burst(); len(chunk) > burst {
			chunk = chunk[:burst]
		}

		if err := t.limiter.WaitN(t.ctx, len(chunk)); err != nil {
			return written, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
		}

		n, err := t.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		p = p[n:]
	}

	return written, nil
}
