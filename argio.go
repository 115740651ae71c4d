// Package argio gives command-line programs one stream abstraction for
// "the file named by this argument", whether that argument is `-` for
// the standard streams, a local file or named pipe, or an http(s) URL.
//
// # Paths
//
// A [Path] classifies a raw argument string without touching the
// resource it names:
//
//	p, err := argio.NewPath("/tmp/report.csv")
//	p, err = argio.NewPath("-")                        // stdin/stdout
//	p, err = argio.NewPath("https://example.com/data") // remote
//
// # Reading and Writing
//
// [Path.Open] and [Path.Create] produce an [Input] or [Output] backed
// by the concrete resource. Both are plain byte streams:
//
//	in, err := argio.NewInput(args[0])
//	out, err := argio.NewOutput(args[1])
//	_, err = io.Copy(out, in)
//	err = out.Finish()
//
// [Output.Finish] is what makes durability guarantees take effect:
// fsync for regular files, the temp-file rename for atomic writes, and
// request completion for remote uploads. Dropping an output via
// [Output.Close] without finishing never corrupts the destination.
//
// # Atomic Writes
//
// A local output opened through [Path.Atomic] accumulates bytes in a
// temp file in the destination's directory; only Finish renames it
// into place:
//
//	p, _ := argio.NewPath("/etc/app/config")
//	out, err := p.Atomic().Create()
//
// # Remote Resources
//
// http and https URLs are served by the
// [github.com/adamwoolhether/argio/remote] package, which bridges the
// blocking request API of [net/http] into incremental Read/Write
// streams. Connection failures surface from the constructor, not from
// the first read or write.
//
// # Flag Parsing
//
// [Input], [Output], [CachedInput], and the deferred [InputPath] and
// [OutputPath] implement [github.com/spf13/pflag.Value], so they can
// be bound directly to flags with stdin/stdout defaults:
//
//	in := argio.StdInput()
//	fs.VarP(in, "input", "i", "path to input, '-' for stdin")
package argio

import (
	"io/fs"
)

// isFifo reports whether the stat info describes a named pipe.
func isFifo(info fs.FileInfo) bool {
	return info.Mode()&fs.ModeNamedPipe != 0
}

// AnyFile is a [Path.Files] predicate that accepts every file.
func AnyFile(*Path) bool { return true }

// HasExtension returns a [Path.Files] predicate that accepts files
// with the given extension. The extension is compared without a
// leading dot: HasExtension("txt") matches "notes.txt".
func HasExtension(ext string) func(*Path) bool {
	return func(p *Path) bool {
		return p.Extension() == ext
	}
}
