package argio

import (
	"github.com/spf13/pflag"
)

// The stream types implement [pflag.Value], so a program can bind an
// argument straight to an opened stream with stdin/stdout defaults:
//
//	in := argio.StdInput()
//	fs.VarP(in, "input", "i", "path to input, '-' for stdin")
//
// Set opens the resource immediately, which is what makes a bad
// argument fail at parse time with the flag's context attached. Note
// that assigning a parsed value around therefore moves an open handle;
// use the explicit Reopen methods when a second handle is wanted.

var (
	_ pflag.Value = (*Path)(nil)
	_ pflag.Value = (*Input)(nil)
	_ pflag.Value = (*Output)(nil)
	_ pflag.Value = (*CachedInput)(nil)
	_ pflag.Value = (*InputPath)(nil)
	_ pflag.Value = (*OutputPath)(nil)
)

// Set replaces p with the classification of raw.
func (p *Path) Set(raw string) error {
	n, err := NewPath(raw)
	if err != nil {
		return err
	}
	*p = *n
	return nil
}

// Type describes the value for pflag help output.
func (p *Path) Type() string { return "path" }

// Set opens raw for reading and replaces the receiver with it. A
// repeated flag closes the stream it replaces.
func (in *Input) Set(raw string) error {
	n, err := NewInput(raw)
	if err != nil {
		return err
	}
	in.Close()
	*in = *n
	return nil
}

// String returns the original path the input was opened from.
func (in *Input) String() string {
	if in == nil || in.path == nil {
		return "-"
	}
	return in.path.String()
}

// Type describes the value for pflag help output.
func (in *Input) Type() string { return "input" }

// Set opens raw for writing and replaces the receiver with it. A
// repeated flag drops the unfinished stream it replaces.
func (out *Output) Set(raw string) error {
	n, err := NewOutput(raw)
	if err != nil {
		return err
	}
	out.Close()
	*out = *n
	return nil
}

// String returns the original path the output was opened from.
func (out *Output) String() string {
	if out == nil || out.path == nil {
		return "-"
	}
	return out.path.String()
}

// Type describes the value for pflag help output.
func (out *Output) Type() string { return "output" }

// Set reads raw fully into memory and replaces the receiver with it.
func (c *CachedInput) Set(raw string) error {
	n, err := NewCachedInput(raw)
	if err != nil {
		return err
	}
	*c = *n
	return nil
}

// String returns the original path the input was read from.
func (c *CachedInput) String() string {
	if c == nil || c.path == nil {
		return "-"
	}
	return c.path.String()
}

// Type describes the value for pflag help output.
func (c *CachedInput) Type() string { return "cached-input" }

// Set validates raw as an input path and replaces the receiver.
func (ip *InputPath) Set(raw string) error {
	n, err := NewInputPath(raw)
	if err != nil {
		return err
	}
	*ip = *n
	return nil
}

// String returns the original path.
func (ip *InputPath) String() string {
	if ip == nil || ip.path == nil {
		return "-"
	}
	return ip.path.String()
}

// Type describes the value for pflag help output.
func (ip *InputPath) Type() string { return "input-path" }

// Set validates raw as an output path and replaces the receiver.
func (op *OutputPath) Set(raw string) error {
	n, err := NewOutputPath(raw)
	if err != nil {
		return err
	}
	*op = *n
	return nil
}

// String returns the original path.
func (op *OutputPath) String() string {
	if op == nil || op.path == nil {
		return "-"
	}
	return op.path.String()
}

// Type describes the value for pflag help output.
func (op *OutputPath) Type() string { return "output-path" }
