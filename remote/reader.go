package remote

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/argio/remote/throttle"
)

// Reader streams the body of a GET response as it arrives from the
// network. It is created by [Client.Get]; a Reader always wraps a live
// 2xx response, because connection and status failures are returned
// from Get itself.
type Reader struct {
	length int64 // declared Content-Length, -1 when absent or unparsable
	body   io.ReadCloser
	r      io.Reader // body, possibly throttled

	id   string
	span trace.Span
}

// Get issues the GET and returns a [Reader] over the response body.
// The response headers have already been received when Get returns, so
// a connection-level failure (bad host, TLS, immediate rejection) or a
// non-2xx status is reported here as a [StatusError], never later from
// Read. A zero-length body is a valid successful response.
func (c *Client) Get(ctx context.Context, url string) (*Reader, error) {
	ctx, span := c.startSpan(ctx, "remote.get", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.End()
		return nil, statusError(http.StatusBadRequest, err.Error())
	}

	resp, err := c.c.Do(req)
	if err != nil {
		span.End()
		return nil, connectionError(err)
	}

	if err := c.checkStatus(resp); err != nil {
		span.End()
		return nil, err
	}

	var r io.Reader = resp.Body
	if c.limiter != nil {
		r = throttle.NewReader(ctx, resp.Body, c.limiter)
	}

	id := uuid.NewString()
	c.logger.Debug("remote get open", "id", id, "url", url, "length", resp.ContentLength)

	return &Reader{
		length: resp.ContentLength,
		body:   resp.Body,
		r:      r,
		id:     id,
		span:   span,
	}, nil
}

// Size returns the declared content length from the response header.
// ok is false when the server declared none.
func (r *Reader) Size() (int64, bool) {
	if r.length < 0 {
		return 0, false
	}
	return r.length, true
}

// Read drains the response body. End-of-stream is io.EOF once the
// server has sent the full body.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Close releases the connection. If the body has not been fully read
// the rest of the transfer is abandoned.
func (r *Reader) Close() error {
	err := r.body.Close()
	r.span.End()
	return err
}
