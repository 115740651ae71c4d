package argio

import (
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adamwoolhether/argio/remote"
)

type pathKind int

const (
	kindStd pathKind = iota
	kindLocal
	kindRemote
)

type direction int

const (
	dirUnknown direction = iota
	dirIn
	dirOut
)

// Path is a classified command-line path argument. It records whether
// the raw string names the standard streams (`-`), a local filesystem
// path, or an http(s) URL, without opening or validating the resource
// itself.
//
// A Path is created once from a string; the only mutations are the
// direction tag (set internally by whichever factory consumes it, for
// display purposes only) and the atomic-write flag set via [Path.Atomic].
type Path struct {
	kind   pathKind
	dir    direction
	atomic bool

	local string   // kindLocal
	url   *url.URL // kindRemote
}

// NewPath classifies raw. An http or https prefix makes it remote (a
// malformed or non-UTF-8 URL is rejected with a 400-coded
// [StatusError]), exactly "-" means the standard streams, and anything
// else is a local path that need not exist yet.
func NewPath(raw string) (*Path, error) {
	if isRemote(raw) {
		if !utf8.ValidString(raw) {
			return nil, &remote.StatusError{Code: 400, Message: "url is not valid UTF-8"}
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, &remote.StatusError{Code: 400, Message: "malformed url: " + err.Error()}
		}
		return &Path{kind: kindRemote, url: u}, nil
	}

	if raw == "-" {
		return &Path{kind: kindStd}, nil
	}

	return &Path{kind: kindLocal, local: raw}, nil
}

// StdPath returns the Path for "-" with the direction not yet known.
func StdPath() *Path {
	return &Path{kind: kindStd}
}

func isRemote(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// withDirection tags a std path with the direction it will be used in.
// The tag only affects the pseudo-device name reported by [Path.Path];
// it never changes which OS resource is opened.
func (p *Path) withDirection(dir direction) *Path {
	c := p.clone()
	if c.kind == kindStd {
		c.dir = dir
	}
	return c
}

// Atomic returns a copy of p that requests temp-file-plus-rename
// semantics when opened for output. The flag only has an effect on a
// local path that is not a named pipe.
func (p *Path) Atomic() *Path {
	c := p.clone()
	c.atomic = true
	return c
}

func (p *Path) clone() *Path {
	c := *p
	if p.url != nil {
		u := *p.url
		c.url = &u
	}
	return &c
}

// IsStd reports whether p is the "-" argument.
func (p *Path) IsStd() bool { return p.kind == kindStd }

// IsLocal reports whether p names a local filesystem path, as opposed
// to the standard streams or a URL.
func (p *Path) IsLocal() bool { return p.kind == kindLocal }

// IsRemote reports whether p is an http(s) URL.
func (p *Path) IsRemote() bool { return p.kind == kindRemote }

// EndsWithSlash reports whether the raw path ends with a path
// separator. Command lines often use a trailing slash to mean a
// directory that may not exist yet, e.g. `cp foo /tmp/`.
func (p *Path) EndsWithSlash() bool {
	return strings.HasSuffix(p.local, "/") || strings.HasSuffix(p.local, string(filepath.Separator))
}

// URL returns the parsed URL of a remote path, or nil otherwise.
func (p *Path) URL() *url.URL {
	if p.kind != kindRemote {
		return nil
	}
	return p.url
}

// Path returns a display path for p. For "-" with a known direction it
// is the matching pseudo-device (/dev/stdin or /dev/stdout); for a URL
// it is the path part of the URL.
func (p *Path) Path() string {
	switch p.kind {
	case kindStd:
		switch p.dir {
		case dirIn:
			return "/dev/stdin"
		case dirOut:
			return "/dev/stdout"
		default:
			return "-"
		}
	case kindRemote:
		return p.url.Path
	default:
		return p.local
	}
}

// String returns the original form the Path was created from.
func (p *Path) String() string {
	switch p.kind {
	case kindStd:
		return "-"
	case kindRemote:
		return p.url.String()
	default:
		return p.local
	}
}

// Equal reports whether two paths classify the same argument. The
// direction tag and atomic flag take part in the comparison.
func (p *Path) Equal(o *Path) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.kind == o.kind && p.dir == o.dir && p.atomic == o.atomic && p.String() == o.String()
}

// FileName returns the final element of the path, or "" if there is
// none. For remote paths it is the final element of the URL path.
func (p *Path) FileName() string {
	switch p.kind {
	case kindStd:
		return ""
	case kindRemote:
		name := filepath.Base(p.url.Path)
		if name == "." || name == "/" {
			return ""
		}
		return name
	default:
		name := filepath.Base(p.local)
		if name == "." || name == string(filepath.Separator) || name == "/" {
			return ""
		}
		return name
	}
}

// SetFileName replaces the final element of the path, making the new
// path a sibling of the original. For remote paths only the path part
// of the URL changes; query and fragment are preserved. No-op for "-".
func (p *Path) SetFileName(name string) {
	switch p.kind {
	case kindLocal:
		p.local = filepath.Join(filepath.Dir(p.local), name)
	case kindRemote:
		dir := pathDir(p.url.Path)
		p.url.Path = dir + name
	}
}

// Extension returns the path's extension without the leading dot, or
// "" if there is none.
func (p *Path) Extension() string {
	var ext string
	switch p.kind {
	case kindLocal:
		ext = filepath.Ext(p.local)
	case kindRemote:
		ext = filepath.Ext(p.url.Path)
	}
	return strings.TrimPrefix(ext, ".")
}

// SetExtension replaces (or adds) the extension of the final path
// element. It reports whether the path had a file name to modify.
func (p *Path) SetExtension(ext string) bool {
	name := p.FileName()
	if name == "" {
		return false
	}
	if cur := filepath.Ext(name); cur != "" {
		name = strings.TrimSuffix(name, cur)
	}
	p.SetFileName(name + "." + ext)
	return true
}

// pathDir returns the directory part of a slash path including the
// trailing slash, so that appending a name yields a sibling path.
func pathDir(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "/"
	}
	return path[:i+1]
}

// Files recursively lists the files under p that match pred. A local
// path that is a directory is walked depth-first; any other path
// (remote URLs and "-" included) yields a single-element result
// containing p itself.
func (p *Path) Files(pred func(*Path) bool) ([]*Path, error) {
	if !p.IsLocal() {
		return []*Path{p.clone()}, nil
	}

	info, err := os.Stat(p.local)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []*Path{p.clone()}, nil
	}

	var out []*Path
	err = filepath.WalkDir(p.local, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fp := &Path{kind: kindLocal, local: path, atomic: p.atomic}
		if pred(fp) {
			out = append(out, fp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Open opens p for input. See [NewInput].
func (p *Path) Open() (*Input, error) {
	return openInput(p.withDirection(dirIn))
}

// Create opens p for output without a size hint. See [NewOutput].
func (p *Path) Create() (*Output, error) {
	return createOutput(p.withDirection(dirOut), noSize)
}

// CreateWithSize opens p for output with a declared size: local files
// are pre-sized with a length-set call, remote uploads declare it as
// the Content-Length header.
func (p *Path) CreateWithSize(size int64) (*Output, error) {
	return createOutput(p.withDirection(dirOut), size)
}

// ReadAll opens p for input and drains it into memory. See
// [NewCachedInput].
func (p *Path) ReadAll() (*CachedInput, error) {
	return cacheInput(p)
}
