package argio

import (
	"io/fs"
	"os"
	"path/filepath"
)

// The assert helpers give [InputPath] and [OutputPath] their eager
// validation. They are advisory by nature: the check and the later
// open are not atomic, so an open can still fail after a check passed,
// and open-time failures are authoritative.

func assertExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return nil
}

func assertNotDir(p *Path) error {
	info, err := os.Stat(p.local)
	switch {
	case err == nil:
		if info.IsDir() {
			return &fs.PathError{Op: "open", Path: p.local, Err: ErrIsDirectory}
		}
		if p.EndsWithSlash() {
			return &fs.PathError{Op: "open", Path: p.local, Err: ErrNotDirectory}
		}
	case os.IsNotExist(err):
		if p.EndsWithSlash() {
			return &fs.PathError{Op: "open", Path: p.local, Err: fs.ErrNotExist}
		}
	default:
		return err
	}
	return nil
}

func assertReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o444 == 0 {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	}
	return nil
}

func assertWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o222 == 0 {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	}
	return nil
}

func assertIsDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "open", Path: path, Err: ErrNotDirectory}
	}
	return nil
}

// assertCreatable validates an output path that may not exist yet: the
// path itself must not be a directory, and if it does not exist its
// parent must be a writable directory.
func assertCreatable(p *Path) error {
	if err := assertNotDir(p); err != nil {
		return err
	}

	if _, err := os.Stat(p.local); err == nil {
		return assertWritable(p.local)
	}

	dir := filepath.Dir(p.local)
	if err := assertIsDir(dir); err != nil {
		return err
	}
	return assertWritable(dir)
}
