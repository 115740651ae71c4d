package argio_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamwoolhether/argio"
)

func TestOutput_WriteFinishRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	out, err := argio.NewOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write([]byte("round trip")); err != nil {
		t.Fatal(err)
	}
	if err := out.Finish(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "round trip" {
		t.Errorf("file holds %q, want %q", got, "round trip")
	}
}

func TestOutput_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.txt")
	mustWriteFile(t, path, "previous much longer contents")

	out, err := argio.NewOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write([]byte("new")); err != nil {
		t.Fatal(err)
	}
	if err := out.Finish(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("file holds %q, want %q", got, "new")
	}
}

func TestOutput_CreateWithSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.bin")

	p, err := argio.NewPath(path)
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.CreateWithSize(10)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	// The file is pre-sized before any write.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 10 {
		t.Errorf("pre-sized file length = %d, want 10", info.Size())
	}
}

func TestOutput_AtomicFinishReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	mustWriteFile(t, path, "old contents")

	p, err := argio.NewPath(path)
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Atomic().Create()
	if err != nil {
		t.Fatal(err)
	}
	if !out.CanSeek() {
		t.Error("the atomic temp file should be seekable")
	}

	if _, err := out.Write([]byte("new contents")); err != nil {
		t.Fatal(err)
	}

	// Before Finish the destination still holds the old bytes.
	mid, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(mid) != "old contents" {
		t.Errorf("destination changed before Finish: %q", mid)
	}

	if err := out.Finish(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new contents" {
		t.Errorf("after Finish: %q, want %q", got, "new contents")
	}
}

func TestOutput_AtomicDropKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "precious")
	mustWriteFile(t, path, "do not touch")

	p, err := argio.NewPath(path)
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Atomic().Create()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write([]byte("partial garbage")); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "do not touch" {
		t.Errorf("dropped atomic write corrupted destination: %q", got)
	}

	// The temp file is cleaned up too.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".argio-") {
			t.Errorf("leftover temp file %q", e.Name())
		}
	}
}

func TestOutput_AtomicDropMissingDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never-created")

	p, err := argio.NewPath(path)
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Atomic().Create()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write([]byte("partial")); err != nil {
		t.Fatal(err)
	}
	out.Close()

	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("destination should not exist after a dropped atomic write, got %v", err)
	}
}

func TestOutput_AtomicMissingParent(t *testing.T) {
	p, err := argio.NewPath(filepath.Join(t.TempDir(), "no-dir", "file"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Atomic().Create(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want not-exist for missing parent directory", err)
	}
}

func TestOutput_TrailingSlashRejected(t *testing.T) {
	_, err := argio.NewOutput(filepath.Join(t.TempDir(), "nothing") + "/")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want not-exist for trailing slash on a missing path", err)
	}

	dir := t.TempDir()
	_, err = argio.NewOutput(dir + "/")
	if !errors.Is(err, argio.ErrIsDirectory) {
		t.Errorf("got %v, want ErrIsDirectory for an existing directory", err)
	}
}

func TestOutput_SeekContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seek.bin")

	out, err := argio.NewOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	if !out.CanSeek() {
		t.Error("a regular file output should be seekable")
	}
	if _, err := out.Write([]byte("xxxx")); err != nil {
		t.Fatal(err)
	}
	if _, err := out.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write([]byte("ab")); err != nil {
		t.Fatal(err)
	}
	if err := out.Finish(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abxx" {
		t.Errorf("after seek-overwrite: %q, want %q", got, "abxx")
	}

	std := argio.StdOutput()
	if std.CanSeek() {
		t.Error("stdout must not be seekable")
	}
	if _, err := std.Seek(0, io.SeekStart); !errors.Is(err, argio.ErrNotSeekable) {
		t.Errorf("seek on stdout: got %v, want ErrNotSeekable", err)
	}
}

func TestOutput_WriteAfterFinish(t *testing.T) {
	out, err := argio.NewOutput(filepath.Join(t.TempDir(), "done.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Finish(); err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write([]byte("late")); !errors.Is(err, argio.ErrFinished) {
		t.Errorf("write after Finish: got %v, want ErrFinished", err)
	}
}

func TestOutputPath_Validation(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing")
	mustWriteFile(t, existing, "x")

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "existing file", raw: existing, wantErr: nil},
		{name: "creatable file", raw: filepath.Join(dir, "new"), wantErr: nil},
		{name: "directory", raw: dir, wantErr: argio.ErrIsDirectory},
		{name: "missing parent", raw: filepath.Join(dir, "no", "deep"), wantErr: os.ErrNotExist},
		{name: "trailing slash", raw: filepath.Join(dir, "ghost") + "/", wantErr: os.ErrNotExist},
		{name: "std", raw: "-", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := argio.NewOutputPath(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.raw == "-" {
				return
			}

			out, err := op.Create()
			if err != nil {
				t.Fatalf("create after validation: %v", err)
			}
			if _, err := out.Write([]byte("ok")); err != nil {
				t.Fatal(err)
			}
			if err := out.Finish(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestOutputPath_AtomicCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target")
	op, err := argio.NewOutputPath(path)
	if err != nil {
		t.Fatal(err)
	}

	out, err := op.Atomic().Create()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write([]byte("atomic via path")); err != nil {
		t.Fatal(err)
	}
	if err := out.Finish(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "atomic via path" {
		t.Errorf("got %q", got)
	}
}
