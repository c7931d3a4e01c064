// Package runner replays exercise snippets with `go run` and compares their
// output against a recorded transcript.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrMismatch is wrapped by Run when the snippet output differs from the
// expected transcript.
var ErrMismatch = errors.New("output mismatch")

// Options configures a single snippet run.
type Options struct {
	// Dir is the snippet directory passed to `go run`.
	Dir string
	// Args are appended after the package argument.
	Args []string
	// GoBinary overrides the go executable; PATH lookup when empty.
	GoBinary string
	// ExpectPath names the transcript to compare against. Empty skips the
	// comparison.
	ExpectPath string
	// ExtraPath directories are prepended to PATH for the child process.
	ExtraPath []string
	// Stdout and Stderr receive the child's streams as they are produced.
	// Nil discards.
	Stdout io.Writer
	Stderr io.Writer
}

// Result holds the captured output of a run.
type Result struct {
	Stdout  []byte
	Matched bool
}

// Run executes the snippet and, when an expected transcript is configured,
// compares the trimmed output against it.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Dir == "" {
		return Result{}, fmt.Errorf("runner: snippet dir is required")
	}
	goPath, err := resolveBinary(opts.GoBinary, "go")
	if err != nil {
		return Result{}, fmt.Errorf("runner: resolve go: %w", err)
	}
	absDir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return Result{}, fmt.Errorf("runner: %w", err)
	}

	args := append([]string{"run", "."}, opts.Args...)
	cmd := exec.CommandContext(ctx, goPath, args...)
	cmd.Dir = absDir
	cmd.Env = prependPathToEnv(os.Environ(), opts.ExtraPath...)

	var stdoutBuf bytes.Buffer
	if opts.Stdout != nil {
		cmd.Stdout = io.MultiWriter(opts.Stdout, &stdoutBuf)
	} else {
		cmd.Stdout = &stdoutBuf
	}
	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	}

	if err := cmd.Run(); err != nil {
		return Result{Stdout: stdoutBuf.Bytes()}, fmt.Errorf("runner: %s failed: %w", filepath.Base(absDir), err)
	}

	res := Result{Stdout: stdoutBuf.Bytes()}
	if opts.ExpectPath == "" {
		return res, nil
	}
	if err := CompareOutput(opts.ExpectPath, res.Stdout); err != nil {
		return res, err
	}
	res.Matched = true
	return res, nil
}

// CompareOutput checks got against the transcript at expectPath, ignoring
// leading and trailing whitespace.
func CompareOutput(expectPath string, got []byte) error {
	want, err := os.ReadFile(expectPath)
	if err != nil {
		return fmt.Errorf("read expect file: %w", err)
	}
	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		return fmt.Errorf("%w\nexpected:\n%s\nactual:\n%s", ErrMismatch, string(want), string(got))
	}
	return nil
}

func resolveBinary(override, name string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", err
		}
		return override, nil
	}
	return exec.LookPath(name)
}

func prependPathToEnv(env []string, dirs ...string) []string {
	if len(dirs) == 0 {
		return env
	}
	out := append([]string(nil), env...)
	prefix := strings.Join(dirs, string(os.PathListSeparator))
	for i, kv := range out {
		if strings.HasPrefix(kv, "PATH=") {
			current := strings.TrimPrefix(kv, "PATH=")
			if current == "" {
				out[i] = "PATH=" + prefix
			} else {
				out[i] = "PATH=" + prefix + string(os.PathListSeparator) + current
			}
			return out
		}
	}
	return append(out, "PATH="+prefix)
}
