package argio

import (
	"bytes"
	"io"
	"io/fs"
)

// CachedInput is the eager variant of [Input]: the whole stream is
// drained into memory at construction, which makes the size knowable
// up front and lets the data be re-read after [CachedInput.Reset].
type CachedInput struct {
	path *Path
	data *bytes.Reader
	buf  []byte
}

// NewCachedInput classifies raw, opens it, and reads everything into
// memory. For "-" this blocks until stdin is closed; if stdin is an
// interactive terminal the read is refused with [ErrInteractiveStdin]
// instead of hanging.
func NewCachedInput(raw string) (*CachedInput, error) {
	p, err := NewPath(raw)
	if err != nil {
		return nil, err
	}
	return cacheInput(p)
}

// StdCachedInput drains stdin into memory.
func StdCachedInput() (*CachedInput, error) {
	return cacheInput(StdPath())
}

func cacheInput(p *Path) (*CachedInput, error) {
	src, err := openInput(p.withDirection(dirIn))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if src.IsTTY() {
		return nil, &fs.PathError{Op: "read", Path: src.path.Path(), Err: ErrInteractiveStdin}
	}

	capacity := int64(4096)
	if n, ok := src.Size(); ok {
		capacity = n
	}
	buf := bytes.NewBuffer(make([]byte, 0, capacity))
	if _, err := io.Copy(buf, src); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	return &CachedInput{
		path: src.path,
		data: bytes.NewReader(data),
		buf:  data,
	}, nil
}

// Read reads from the in-memory copy.
func (c *CachedInput) Read(p []byte) (int, error) {
	return c.data.Read(p)
}

// Seek repositions within the in-memory copy. Always supported.
func (c *CachedInput) Seek(offset int64, whence int) (int64, error) {
	return c.data.Seek(offset, whence)
}

// Close is a no-op; the backing resource was already released during
// construction.
func (c *CachedInput) Close() error { return nil }

// Reset rewinds the reader back to the start of the data.
func (c *CachedInput) Reset() {
	c.data.Seek(0, io.SeekStart)
}

// Size returns the total number of cached bytes, regardless of the
// current read position.
func (c *CachedInput) Size() int64 { return int64(len(c.buf)) }

// IsEmpty reports whether the input held zero bytes.
func (c *CachedInput) IsEmpty() bool { return len(c.buf) == 0 }

// Bytes returns the cached data. The slice is shared, not copied.
func (c *CachedInput) Bytes() []byte { return c.buf }

// Path returns the classified path this input was read from.
func (c *CachedInput) Path() *Path { return c.path }

// IsStd reports whether the data came from stdin.
func (c *CachedInput) IsStd() bool { return c.path.IsStd() }

// IsLocal reports whether the data came from the local filesystem.
func (c *CachedInput) IsLocal() bool { return c.path.IsLocal() }

var _ io.ReadSeekCloser = (*CachedInput)(nil)
