package argio

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/adamwoolhether/argio/remote"
)

// noSize marks an output opened without a declared size.
const noSize int64 = -1

// tmpPattern names the transient file an atomic write accumulates
// into, created in the destination's parent directory so the final
// rename stays on one filesystem.
const tmpPattern = ".argio-*"

// Output is a byte stream opened for writing to a classified path:
// stdout for "-", a regular file, named pipe, or atomic temp file for
// a local path, or a streaming PUT request for a URL.
//
// [Output.Finish] must be called for the durability, atomicity, and
// upload-completion guarantees to take effect. Dropping an Output with
// [Output.Close] instead is always safe but guarantees nothing beyond
// leaving the destination uncorrupted: an unfinished atomic write
// discards its temp file, and an unfinished upload is abandoned.
type Output struct {
	path *Path
	kind streamKind

	file   *os.File // streamStd (os.Stdout), streamPipe, streamFile, streamAtomic
	tmp    string   // temp file path while a streamAtomic write is in flight
	remote *remote.Writer

	finished bool
}

// NewOutput classifies raw and opens it for writing, creating or
// truncating a local file.
func NewOutput(raw string) (*Output, error) {
	p, err := NewPath(raw)
	if err != nil {
		return nil, err
	}
	return p.Create()
}

// StdOutput returns an Output writing to the process's standard output.
func StdOutput() *Output {
	return &Output{
		path: StdPath().withDirection(dirOut),
		kind: streamStd,
		file: os.Stdout,
	}
}

// createOutput opens the concrete backing resource for p. A size >= 0
// pre-sizes a local file with a length-set call or becomes the
// Content-Length header of a remote upload.
func createOutput(p *Path, size int64) (*Output, error) {
	switch p.kind {
	case kindStd:
		return &Output{path: p, kind: streamStd, file: os.Stdout}, nil

	case kindLocal:
		// A trailing separator names a directory, which can never be a
		// byte stream, even when nothing exists there yet.
		if p.EndsWithSlash() {
			return nil, trailingSlashError(p)
		}
		if p.atomic && !destIsFifo(p.local) {
			return createAtomic(p, size)
		}
		return createLocal(p, size)

	default:
		w, err := remote.Default().Put(context.Background(), p.url.String(), size)
		if err != nil {
			return nil, err
		}
		return &Output{path: p, kind: streamRemote, remote: w}, nil
	}
}

func trailingSlashError(p *Path) error {
	if info, err := os.Stat(p.local); err == nil {
		if info.IsDir() {
			return &fs.PathError{Op: "create", Path: p.local, Err: ErrIsDirectory}
		}
		return &fs.PathError{Op: "create", Path: p.local, Err: ErrNotDirectory}
	}
	return &fs.PathError{Op: "create", Path: p.local, Err: fs.ErrNotExist}
}

// destIsFifo reports whether a named pipe already sits at path. Atomic
// semantics are meaningless for a pipe, so such a destination is
// opened directly instead.
func destIsFifo(path string) bool {
	info, err := os.Stat(path)
	return err == nil && isFifo(info)
}

func createLocal(p *Path, size int64) (*Output, error) {
	f, err := os.OpenFile(p.local, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	kind := streamFile
	if isFifo(info) {
		kind = streamPipe
	} else if size >= 0 {
		if err := f.Truncate(size); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &Output{path: p, kind: kind, file: f}, nil
}

// createAtomic stages writes in a temp file next to the destination.
// Only Finish performs the rename into place; until then the
// destination is untouched.
func createAtomic(p *Path, size int64) (*Output, error) {
	dir := filepath.Dir(p.local)
	if err := assertIsDir(dir); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return nil, err
	}
	if size >= 0 {
		if err := f.Truncate(size); err != nil {
			f.Close()
			os.Remove(f.Name())
			return nil, err
		}
	}

	return &Output{path: p, kind: streamAtomic, file: f, tmp: f.Name()}, nil
}

// Write writes to the active arm.
func (out *Output) Write(p []byte) (int, error) {
	if out.finished {
		return 0, ErrFinished
	}
	if out.kind == streamRemote {
		return out.remote.Write(p)
	}
	return out.file.Write(p)
}

// Flush pushes buffered bytes toward the destination. None of the arms
// buffer in-process, so this never blocks on the network or disk.
func (out *Output) Flush() error {
	if out.kind == streamRemote {
		return out.remote.Flush()
	}
	return nil
}

// Seek repositions the stream. Only the regular-file and atomic arms
// are seekable; every other arm returns [ErrNotSeekable].
func (out *Output) Seek(offset int64, whence int) (int64, error) {
	if out.kind != streamFile && out.kind != streamAtomic {
		return 0, &fs.PathError{Op: "seek", Path: out.path.Path(), Err: ErrNotSeekable}
	}
	return out.file.Seek(offset, whence)
}

// Finish completes the write and releases the stream. Per arm: no-op
// for stdout and pipes, a durability sync for a regular file, the
// atomic rename over the destination for an atomic write, and
// end-of-body plus the worker's terminal result for an upload.
// Finishing twice is a no-op.
func (out *Output) Finish() error {
	if out.finished {
		return nil
	}
	out.finished = true

	switch out.kind {
	case streamStd:
		return nil

	case streamPipe:
		return out.file.Close()

	case streamFile:
		if err := out.file.Sync(); err != nil {
			out.file.Close()
			return err
		}
		return out.file.Close()

	case streamAtomic:
		if err := out.file.Sync(); err != nil {
			out.discardTemp()
			return err
		}
		if err := out.file.Close(); err != nil {
			os.Remove(out.tmp)
			return err
		}
		if err := os.Rename(out.tmp, out.path.local); err != nil {
			os.Remove(out.tmp)
			return err
		}
		return nil

	default:
		return out.remote.Finish()
	}
}

// Close drops the stream without completing it. The destination is
// never corrupted: an atomic write discards its temp file leaving the
// prior contents (or absence) unchanged, and an upload is abandoned
// with its outcome discarded. After Finish, Close is a no-op.
func (out *Output) Close() error {
	if out.finished {
		return nil
	}
	out.finished = true

	switch out.kind {
	case streamStd:
		return nil
	case streamAtomic:
		out.discardTemp()
		return nil
	case streamRemote:
		return out.remote.Close()
	default:
		return out.file.Close()
	}
}

// discardTemp is best-effort cleanup on the non-Finish paths, which
// cannot report failure anyway.
func (out *Output) discardTemp() {
	out.file.Close()
	os.Remove(out.tmp)
}

// IsStd reports whether this Output writes to stdout.
func (out *Output) IsStd() bool { return out.kind == streamStd }

// IsLocal reports whether this Output writes to the local filesystem.
func (out *Output) IsLocal() bool { return out.path.IsLocal() }

// IsTTY reports whether this Output is stdout connected to an
// interactive terminal.
func (out *Output) IsTTY() bool {
	return out.IsStd() && term.IsTerminal(int(os.Stdout.Fd()))
}

// CanSeek reports whether [Output.Seek] will work: only the
// regular-file and atomic arms have a position.
func (out *Output) CanSeek() bool {
	return out.kind == streamFile || out.kind == streamAtomic
}

// Path returns the classified path this Output was opened from.
func (out *Output) Path() *Path { return out.path }

// File returns the underlying *os.File for the regular-file arm, and
// nil for every other arm.
func (out *Output) File() *os.File {
	if out.kind != streamFile {
		return nil
	}
	return out.file
}

// Reopen opens a fresh Output from the same path, truncating local
// destinations again. It exists to satisfy flag-parser plumbing that
// wants to copy values; it is not a duplicate handle.
func (out *Output) Reopen() (*Output, error) {
	return createOutput(out.path.clone(), noSize)
}

var _ io.WriteCloser = (*Output)(nil)
