package remote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/adamwoolhether/argio/remote/throttle"
)

// maxErrBodySize caps the amount of response body read when building
// an error for an unexpected status code. This prevents unbounded
// memory usage when a large response arrives with a wrong status.
const maxErrBodySize = 4 << 10 // 4KB

// Client issues GET and PUT exchanges for remote paths. It wraps the
// std-lib *http.Client and can be customized via optional funcs.
type Client struct {
	c       *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
	limiter *rate.Limiter
}

// Build creates a [Client] with the given options applied over the
// defaults: a copy of http.DefaultClient, slog.Default, no tracing,
// no throttle. The default client is copied so that transport and
// timeout tweaks never leak into other users of http.DefaultClient.
func Build(optFns ...Option) (*Client, error) {
	hc := *http.DefaultClient
	client := &Client{
		c:      &hc,
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer(""),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	client.c.Transport = transport

	if opts.throttle != nil {
		limiter, err := throttle.NewLimiter(*opts.throttle)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		client.limiter = limiter
	}

	return client, nil
}

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

// Default returns the process-wide [Client] used when a remote path is
// opened without an explicit client.
func Default() *Client {
	defaultClientOnce.Do(func() {
		defaultClient, _ = Build()
	})
	return defaultClient
}

// checkStatus translates a non-2xx response into a [StatusError]
// carrying the numeric code and a bounded amount of the body as the
// server message. The response body is always closed.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
	if err != nil {
		b = []byte("unable to read body")
	}
	if err := resp.Body.Close(); err != nil {
		c.logger.Error("failed to close response body", "error", err)
	}

	return statusError(resp.StatusCode, string(b))
}

func (c *Client) startSpan(ctx context.Context, name, url string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("url", url)))
}
