package makedb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultArgs ask make to print its data base without running recipes,
// without built-in rules and without "Entering directory" banners.
var DefaultArgs = []string{
	"--just-print",
	"--print-data-base",
	"--no-builtin-rules",
	"--no-print-directory",
	"--silent",
}

// Dumper produces the raw data base dump for a directory.
type Dumper interface {
	Dump(ctx context.Context, dir string) (string, error)
}

// Invoker runs make against a directory in dry-run data base mode.
type Invoker struct {
	Path    string        // make binary, looked up on PATH when not absolute
	Args    []string      // full argument list; make runs with dir as its working directory
	Timeout time.Duration // zero means no timeout
}

// NewInvoker returns an Invoker for path with DefaultArgs followed by extra.
func NewInvoker(path string, extra ...string) *Invoker {
	if path == "" {
		path = "make"
	}
	args := append(append([]string{}, DefaultArgs...), extra...)
	return &Invoker{Path: path, Args: args}
}

// Dump runs the build tool and returns everything it wrote to stdout. A
// non-nil error never discards the output: a Makefile with errors still
// reports the variables make managed to read.
func (i *Invoker) Dump(ctx context.Context, dir string) (string, error) {
	if i.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, i.Path, i.Args...)
	cmd.Dir = dir

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start %s: %w", i.Path, err)
	}

	var stdout, stderr bytes.Buffer
	var group errgroup.Group
	group.Go(func() error {
		_, err := io.Copy(&stdout, stdoutPipe)
		return err
	})
	group.Go(func() error {
		_, err := io.Copy(&stderr, stderrPipe)
		return err
	})
	readErr := group.Wait()
	waitErr := cmd.Wait()

	if stderr.Len() > 0 {
		log.Debugf("%s in %s: %s", i.Path, dir, strings.TrimSpace(stderr.String()))
	}

	switch {
	case waitErr != nil:
		return stdout.String(), &InvokeError{Dir: dir, Stderr: stderr.String(), Err: waitErr}
	case readErr != nil:
		return stdout.String(), &InvokeError{Dir: dir, Stderr: stderr.String(), Err: readErr}
	case stdout.Len() == 0 && stderr.Len() > 0:
		return "", &InvokeError{Dir: dir, Stderr: stderr.String(), Err: ErrNoOutput}
	}
	return stdout.String(), nil
}

// InvokeError describes a soft failure of the build tool.
type InvokeError struct {
	Dir    string
	Stderr string
	Err    error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("make in %s: %v", e.Dir, e.Err)
}

func (e *InvokeError) Unwrap() error {
	return e.Err
}
