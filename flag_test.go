package argio_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/adamwoolhether/argio"
)

func TestFlag_InputDefaultsToStdin(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	in := argio.StdInput()
	flags.VarP(in, "input", "i", "path to input, '-' for stdin")

	if err := flags.Parse(nil); err != nil {
		t.Fatal(err)
	}

	if !in.IsStd() {
		t.Error("unset flag should leave the stdin default")
	}
	if got := in.String(); got != "-" {
		t.Errorf("String() = %q, want %q", got, "-")
	}
	if got := in.Type(); got != "input" {
		t.Errorf("Type() = %q, want %q", got, "input")
	}
}

func TestFlag_InputOpensFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flagged.txt")
	mustWriteFile(t, path, "flag data")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	in := argio.StdInput()
	flags.VarP(in, "input", "i", "")

	if err := flags.Parse([]string{"--input", path}); err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	got, err := io.ReadAll(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "flag data" {
		t.Errorf("read %q", got)
	}
	if in.String() != path {
		t.Errorf("String() = %q, want %q", in.String(), path)
	}
}

func TestFlag_ParseErrorSurfacesOpenFailure(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	in := argio.StdInput()
	flags.Var(in, "input", "")

	err := flags.Parse([]string{"--input", filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatal("expected parse to fail for a missing file")
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("parse error should carry the open failure, got %v", err)
	}
}

func TestFlag_RepeatedFlagClosesReplacedStream(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	mustWriteFile(t, first, "one")
	mustWriteFile(t, second, "two")

	in := argio.StdInput()
	if err := in.Set(first); err != nil {
		t.Fatal(err)
	}
	old := in.File()
	if old == nil {
		t.Fatal("expected a file handle after the first Set")
	}

	if err := in.Set(second); err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	if _, err := old.Read(make([]byte, 1)); !errors.Is(err, os.ErrClosed) {
		t.Errorf("replaced input handle should be closed, read returned %v", err)
	}

	out := argio.StdOutput()
	if err := out.Set(filepath.Join(dir, "out-a")); err != nil {
		t.Fatal(err)
	}
	oldOut := out.File()
	if err := out.Set(filepath.Join(dir, "out-b")); err != nil {
		t.Fatal(err)
	}
	defer out.Finish()

	if _, err := oldOut.Write([]byte("x")); !errors.Is(err, os.ErrClosed) {
		t.Errorf("replaced output handle should be closed, write returned %v", err)
	}
}

func TestFlag_OutputCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	out := argio.StdOutput()
	flags.VarP(out, "output", "o", "")

	if err := flags.Parse([]string{"-o", path}); err != nil {
		t.Fatal(err)
	}
	if out.IsStd() {
		t.Error("flag should have replaced the stdout default")
	}
	if _, err := out.Write([]byte("via flag")); err != nil {
		t.Fatal(err)
	}
	if err := out.Finish(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "via flag" {
		t.Errorf("got %q", got)
	}
}

func TestFlag_OutputPathDeferred(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deferred.txt")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	op := argio.StdOutputPath()
	flags.Var(op, "output", "")

	if err := flags.Parse([]string{"--output", path}); err != nil {
		t.Fatal(err)
	}

	// Validation passed but nothing has been created yet.
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("deferred path should not exist yet: %v", err)
	}

	out, err := op.Create()
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Finish(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected the file after Create+Finish: %v", err)
	}
}

func TestFlag_PathValue(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	p := argio.StdPath()
	flags.Var(p, "path", "")

	if err := flags.Parse([]string{"--path", "https://example.com/x"}); err != nil {
		t.Fatal(err)
	}
	if !p.IsRemote() {
		t.Error("expected a remote path after parsing")
	}
	if p.Type() != "path" {
		t.Errorf("Type() = %q", p.Type())
	}
}
