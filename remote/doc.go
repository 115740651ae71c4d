// Package remote bridges the blocking request API of [net/http] into
// the incremental byte streams that [github.com/adamwoolhether/argio]
// hands to callers, without ever materializing a payload in memory.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := remote.Build(
//		remote.WithTimeout(30 * time.Second),
//		remote.WithUserAgent("myapp/1.0"),
//		remote.WithThrottle(1<<20, 64<<10), // 1 MiB/s
//	)
//
// # Downloading
//
// [Client.Get] issues the request synchronously; connection failures
// and non-2xx statuses are constructor failures, so a returned
// [Reader] is always backed by a live 2xx response whose body streams
// incrementally:
//
//	r, err := c.Get(ctx, "https://example.com/data.bin")
//	if err != nil { ... }
//	defer r.Close()
//	n, ok := r.Size() // declared Content-Length, if the server sent one
//
// # Uploading
//
// [Client.Put] runs the exchange on a dedicated worker goroutine fed
// by an in-process pipe. The constructor blocks until either the
// transport pulls the first body bytes (the connection is live) or the
// exchange terminates without ever reading (DNS failure, TLS failure,
// immediate rejection), in which case the error is returned from Put
// itself — never from a half-built writer's first Write:
//
//	w, err := c.Put(ctx, "https://example.com/upload", size)
//	if err != nil { ... }
//	_, err = io.Copy(w, src)
//	err = w.Finish() // end-of-body, then the worker's terminal result
//
// Backpressure is natural: if the exchange stalls, the pipe fills and
// Write blocks. Closing a writer without calling Finish abandons the
// in-flight request and discards its outcome.
package remote
