// Package toolchain compiles generated sources with an external C compiler.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ErrCompilation is returned when the compiler exits non-zero or cannot start
var ErrCompilation = errors.New("compilation failed")

const (
	DefaultCompiler = "gcc"
	DefaultOutput   = "a.exe"
)

// Toolchain describes how to invoke the compiler
type Toolchain struct {
	Compiler string
	Args     []string
	Output   string
	Stdout   io.Writer
	Stderr   io.Writer
}

// Command builds "<compiler> <source> [args...] -o <output>"
func (t *Toolchain) Command(ctx context.Context, source string) *exec.Cmd {
	compiler := t.Compiler
	if compiler == "" {
		compiler = DefaultCompiler
	}
	output := t.Output
	if output == "" {
		output = DefaultOutput
	}

	args := append([]string{source}, t.Args...)
	args = append(args, "-o", output)
	cmd := exec.CommandContext(ctx, compiler, args...)
	cmd.Stdout = t.Stdout
	cmd.Stderr = t.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd
}

// Compile runs the compiler on source
func (t *Toolchain) Compile(ctx context.Context, source string) error {
	if err := t.Command(ctx, source).Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrCompilation, err)
	}
	return nil
}
