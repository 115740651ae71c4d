package remote

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/argio/remote/throttle"
)

// Writer streams the body of a PUT request while the exchange runs on
// a dedicated worker goroutine. It is created by [Client.Put].
//
// Lifecycle: created, written to, then either finished with [Finish]
// (closes the body and waits for the worker's terminal result) or
// dropped with [Close] (abandons the request, outcome discarded).
type Writer struct {
	pw   *io.PipeWriter
	w    io.Writer // pw, possibly throttled
	done chan error

	id       string
	logger   *slog.Logger
	span     trace.Span
	finished bool
	result   error
}

// firstReadBody wraps the read end of the body pipe and signals the
// first time the HTTP transport actually pulls from it. That first
// read is the earliest observable evidence that a connection was
// established and the transport started streaming the body.
type firstReadBody struct {
	r         *io.PipeReader
	once      sync.Once
	connected chan struct{}
}

func (b *firstReadBody) Read(p []byte) (int, error) {
	b.once.Do(func() { close(b.connected) })
	return b.r.Read(p)
}

func (b *firstReadBody) Close() error {
	return b.r.Close()
}

// Put opens a PUT exchange against url and returns a [Writer] for its
// body. A size > 0 is declared as the Content-Length header, size == 0
// sends an explicitly empty body, and size < 0 sends a chunked body.
//
// Put spawns one worker goroutine to run the blocking exchange, then
// blocks until one of two things happens first: the transport pulls
// the first body bytes, meaning the connection is live and the writer
// is returned, or the worker reports a terminal failure before ever
// reading (DNS failure, TLS failure, immediate rejection), which is
// returned instead. A Writer whose underlying connection already
// failed is never returned.
func (c *Client) Put(ctx context.Context, url string, size int64) (*Writer, error) {
	ctx, span := c.startSpan(ctx, "remote.put", url)

	pr, pw := io.Pipe()
	body := &firstReadBody{r: pr, connected: make(chan struct{})}

	// A zero ContentLength next to a live body reads as unknown length
	// and would go out chunked; NoBody is what declares the zero.
	var reqBody io.Reader = body
	if size == 0 {
		reqBody = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reqBody)
	if err != nil {
		span.End()
		return nil, statusError(http.StatusBadRequest, err.Error())
	}
	if size > 0 {
		req.ContentLength = size
	}

	// Buffered so the worker can always deliver its terminal result and
	// exit, even when the writer was abandoned and nobody will receive.
	done := make(chan error, 1)

	go func() {
		done <- c.exchange(req, pr)
	}()

	select {
	case <-body.connected:
	case err := <-done:
		if err != nil {
			pw.CloseWithError(err)
			span.End()
			return nil, err
		}
		// The exchange completed without pulling any body bytes: a
		// valid empty upload. Stash the result for Finish, and break
		// the pipe so a stray Write fails instead of blocking on a
		// reader that is gone.
		pr.CloseWithError(io.ErrClosedPipe)
		done <- nil
	}

	var w io.Writer = pw
	if c.limiter != nil {
		w = throttle.NewWriter(ctx, pw, c.limiter)
	}

	id := uuid.NewString()
	c.logger.Debug("remote put open", "id", id, "url", url, "size", size)

	return &Writer{
		pw:     pw,
		w:      w,
		done:   done,
		id:     id,
		logger: c.logger,
		span:   span,
	}, nil
}

// exchange runs the blocking request on the worker and translates its
// outcome. On failure the read end of the body pipe is poisoned so
// that in-flight Writes fail instead of blocking forever.
func (c *Client) exchange(req *http.Request, pr *io.PipeReader) error {
	resp, err := c.c.Do(req)
	if err != nil {
		cerr := connectionError(err)
		pr.CloseWithError(cerr)
		return cerr
	}

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	// The upload response body is unused; drain and close it so the
	// connection can be reused.
	io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		c.logger.Error("failed to close response body", "error", err)
	}
	return nil
}

// Write pushes bytes into the body pipe. It blocks while the exchange
// stalls: backpressure comes from the pipe, not from buffering.
func (w *Writer) Write(p []byte) (int, error) {
	if w.finished {
		return 0, io.ErrClosedPipe
	}
	return w.w.Write(p)
}

// Flush is a no-op: the body pipe holds no buffered data.
func (w *Writer) Flush() error { return nil }

// Finish signals end-of-body and blocks for the worker's terminal
// result. A non-2xx response comes back as a [StatusError] carrying
// the numeric status and server message. Finish must be called for the
// upload to be confirmed; calling it again returns the same result.
func (w *Writer) Finish() error {
	if w.finished {
		return w.result
	}
	w.finished = true

	w.pw.Close()
	w.result = <-w.done
	w.span.End()
	w.logger.Debug("remote put done", "id", w.id, "error", w.result)

	return w.result
}

// Close abandons the upload if Finish was not called: the body pipe is
// broken, the worker observes it and unwinds, and its outcome is
// discarded. After a Finish, Close is a no-op.
func (w *Writer) Close() error {
	if w.finished {
		return nil
	}
	w.finished = true

	w.pw.CloseWithError(ErrAbandoned)
	w.span.End()
	w.logger.Debug("remote put abandoned", "id", w.id)

	return nil
}
