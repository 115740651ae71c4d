package remote

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/argio/remote/throttle"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error

type options struct {
	client    *http.Client
	rt        http.RoundTripper
	timeout   *time.Duration
	userAgent string
	throttle  *throttle.Config
	logger    *slog.Logger
	tracer    trace.Tracer
}

// WithClient replaces the default [http.Client] used by the [Client].
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying
// [http.Client]. Note that for transfers the timeout covers the whole
// exchange, body included.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle caps transfer bandwidth with a token bucket of
// bytesPerSec sustained rate and burst capacity in bytes.
func WithThrottle(bytesPerSec, burst int) Option {
	return func(o *options) error {
		cfg := throttle.Config{BytesPerSec: bytesPerSec, Burst: burst}
		if err := validate.Struct(cfg); err != nil {
			return fmt.Errorf("throttle config: %w", err)
		}
		o.throttle = &cfg
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer records one span per transfer on the given tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
