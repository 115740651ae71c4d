package argio

import (
	"errors"

	"github.com/adamwoolhether/argio/remote"
)

var (
	// ErrNotSeekable is returned by Seek on stream arms that have no
	// position: the standard streams, named pipes, and remote transfers.
	ErrNotSeekable = errors.New("stream is not seekable")

	// ErrIsDirectory is returned when a path opened for input turns out
	// to be a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrNotDirectory is returned when a path component that must be a
	// directory is not one, e.g. the parent of an atomic-write target.
	ErrNotDirectory = errors.New("not a directory")

	// ErrInteractiveStdin is returned by [NewCachedInput] when it would
	// otherwise block forever draining an interactive terminal.
	ErrInteractiveStdin = errors.New("blocked reading from stdin because it is a tty")

	// ErrFinished is returned when writing to an [Output] after Finish.
	ErrFinished = errors.New("output already finished")
)

// Re-exports from [remote], so callers that never touch the bridge
// directly can still classify its failures.

type (
	// StatusError is an HTTP failure carrying the numeric status and the
	// server-supplied message. errors.Is maps 404/410 to fs.ErrNotExist
	// and 401/403 to fs.ErrPermission.
	StatusError = remote.StatusError
)

var (
	// ErrUnexpectedStatus is the sentinel wrapped by [StatusError] when a
	// response arrived with a non-2xx code.
	ErrUnexpectedStatus = remote.ErrUnexpectedStatus

	// ErrConnectionFailed is the sentinel wrapped by [StatusError] when
	// the exchange failed before any HTTP status was received.
	ErrConnectionFailed = remote.ErrConnectionFailed
)
