package argio

import (
	"context"
	"io"
	"io/fs"
	"os"

	"golang.org/x/term"

	"github.com/adamwoolhether/argio/remote"
)

// streamKind tags the single active arm of an [Input] or [Output].
type streamKind int

const (
	streamStd streamKind = iota
	streamPipe
	streamFile
	streamRemote
	streamAtomic
)

// Input is a byte stream opened for reading from a classified path:
// stdin for "-", a regular file or named pipe for a local path, or a
// streaming GET response for a URL. Exactly one arm is active; every
// io method dispatches on it in one place.
type Input struct {
	path *Path
	kind streamKind

	file   *os.File // streamStd (os.Stdin), streamPipe, streamFile
	remote *remote.Reader
}

// NewInput classifies raw and opens it for reading.
func NewInput(raw string) (*Input, error) {
	p, err := NewPath(raw)
	if err != nil {
		return nil, err
	}
	return p.Open()
}

// StdInput returns an Input reading from the process's standard input.
// It never touches the filesystem.
func StdInput() *Input {
	return &Input{
		path: StdPath().withDirection(dirIn),
		kind: streamStd,
		file: os.Stdin,
	}
}

// openInput opens the concrete backing resource for p. Exactly one OS
// handle is opened (or one HTTP request issued); there are no retries.
func openInput(p *Path) (*Input, error) {
	switch p.kind {
	case kindStd:
		return &Input{path: p, kind: streamStd, file: os.Stdin}, nil

	case kindLocal:
		f, err := os.Open(p.local)
		if err != nil {
			return nil, err
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		if info.IsDir() {
			f.Close()
			return nil, &fs.PathError{Op: "open", Path: p.local, Err: ErrIsDirectory}
		}
		kind := streamFile
		if isFifo(info) {
			kind = streamPipe
		}
		return &Input{path: p, kind: kind, file: f}, nil

	default:
		r, err := remote.Default().Get(context.Background(), p.url.String())
		if err != nil {
			return nil, err
		}
		return &Input{path: p, kind: streamRemote, remote: r}, nil
	}
}

// Read reads from the active arm.
func (in *Input) Read(p []byte) (int, error) {
	if in.kind == streamRemote {
		return in.remote.Read(p)
	}
	return in.file.Read(p)
}

// Seek repositions the stream. Only the regular-file arm is seekable;
// every other arm returns [ErrNotSeekable].
func (in *Input) Seek(offset int64, whence int) (int64, error) {
	if in.kind != streamFile {
		return 0, &fs.PathError{Op: "seek", Path: in.path.Path(), Err: ErrNotSeekable}
	}
	return in.file.Seek(offset, whence)
}

// Close releases the backing OS resource. Closing a stdin Input is a
// no-op so the process stream stays usable.
func (in *Input) Close() error {
	switch in.kind {
	case streamStd:
		return nil
	case streamRemote:
		return in.remote.Close()
	default:
		return in.file.Close()
	}
}

// Size returns the number of bytes this input will yield, when that is
// knowable without reading: file metadata for a regular file, the
// declared content length for a remote transfer. ok is false for
// stdin, pipes, and remote responses without a Content-Length.
func (in *Input) Size() (int64, bool) {
	switch in.kind {
	case streamFile:
		info, err := in.file.Stat()
		if err != nil {
			return 0, false
		}
		return info.Size(), true
	case streamRemote:
		return in.remote.Size()
	default:
		return 0, false
	}
}

// IsEmpty reports whether the input holds zero bytes. ok is false
// whenever [Input.Size] cannot answer.
func (in *Input) IsEmpty() (empty, ok bool) {
	n, ok := in.Size()
	return n == 0, ok
}

// IsStd reports whether this Input reads from stdin.
func (in *Input) IsStd() bool { return in.kind == streamStd }

// IsLocal reports whether this Input reads from the local filesystem.
func (in *Input) IsLocal() bool { return in.path.IsLocal() }

// IsTTY reports whether this Input is stdin connected to an
// interactive terminal.
func (in *Input) IsTTY() bool {
	return in.IsStd() && term.IsTerminal(int(os.Stdin.Fd()))
}

// CanSeek reports whether [Input.Seek] will work: only the
// regular-file arm has a position.
func (in *Input) CanSeek() bool { return in.kind == streamFile }

// Path returns the classified path this Input was opened from.
func (in *Input) Path() *Path { return in.path }

// File returns the underlying *os.File for the regular-file arm, and
// nil for every other arm.
func (in *Input) File() *os.File {
	if in.kind != streamFile {
		return nil
	}
	return in.file
}

// Reopen opens a fresh Input from the same path. It exists to satisfy
// flag-parser plumbing that wants to copy values: the new handle does
// not share or preserve the stream position of the original, and for
// remote paths it issues a new request.
func (in *Input) Reopen() (*Input, error) {
	return openInput(in.path.clone())
}

var _ io.ReadSeekCloser = (*Input)(nil)
