package argio

// InputPath and OutputPath validate a path argument eagerly, at flag
// parsing time where an error still renders next to the offending
// argument, but defer opening the resource until the caller is ready
// to stream. The validation is advisory: the filesystem can change
// between the check and the open (TOCTOU), so open-time failures are
// authoritative over an earlier validation success.

// InputPath is a validated-but-unopened input argument.
type InputPath struct {
	path *Path
}

// NewInputPath classifies raw and, for local paths, checks that the
// file exists, is not a directory, and is readable.
func NewInputPath(raw string) (*InputPath, error) {
	p, err := NewPath(raw)
	if err != nil {
		return nil, err
	}
	p = p.withDirection(dirIn)

	if p.IsLocal() {
		if err := assertExists(p.local); err != nil {
			return nil, err
		}
		if err := assertNotDir(p); err != nil {
			return nil, err
		}
		if err := assertReadable(p.local); err != nil {
			return nil, err
		}
	}

	return &InputPath{path: p}, nil
}

// StdInputPath returns the InputPath for "-".
func StdInputPath() *InputPath {
	return &InputPath{path: StdPath().withDirection(dirIn)}
}

// Open opens the validated path for reading.
func (ip *InputPath) Open() (*Input, error) {
	return openInput(ip.path.clone())
}

// Path returns the classified path.
func (ip *InputPath) Path() *Path { return ip.path }

// IsStd reports whether the path is "-".
func (ip *InputPath) IsStd() bool { return ip.path.IsStd() }

// IsLocal reports whether the path is on the local filesystem.
func (ip *InputPath) IsLocal() bool { return ip.path.IsLocal() }

// OutputPath is a validated-but-unopened output argument.
type OutputPath struct {
	path *Path
}

// NewOutputPath classifies raw and, for local paths, checks that the
// destination can plausibly be created: an existing file must be
// writable and not a directory, a missing one needs a writable parent
// directory, and a trailing separator is rejected outright.
func NewOutputPath(raw string) (*OutputPath, error) {
	p, err := NewPath(raw)
	if err != nil {
		return nil, err
	}
	p = p.withDirection(dirOut)

	if p.IsLocal() {
		if err := assertCreatable(p); err != nil {
			return nil, err
		}
	}

	return &OutputPath{path: p}, nil
}

// StdOutputPath returns the OutputPath for "-".
func StdOutputPath() *OutputPath {
	return &OutputPath{path: StdPath().withDirection(dirOut)}
}

// Atomic returns a copy whose eventual output uses
// temp-file-plus-rename semantics.
func (op *OutputPath) Atomic() *OutputPath {
	return &OutputPath{path: op.path.Atomic()}
}

// Create opens the validated path for writing.
func (op *OutputPath) Create() (*Output, error) {
	return createOutput(op.path.clone(), noSize)
}

// CreateWithSize opens the validated path for writing with a declared
// size.
func (op *OutputPath) CreateWithSize(size int64) (*Output, error) {
	return createOutput(op.path.clone(), size)
}

// Path returns the classified path.
func (op *OutputPath) Path() *Path { return op.path }

// IsStd reports whether the path is "-".
func (op *OutputPath) IsStd() bool { return op.path.IsStd() }

// IsLocal reports whether the path is on the local filesystem.
func (op *OutputPath) IsLocal() bool { return op.path.IsLocal() }
