package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMatchesTranscript(t *testing.T) {
	requireGo(t)
	dir := filepath.Join("..", "..", "exercises", "maxand")
	var stdout bytes.Buffer
	res, err := Run(context.Background(), Options{
		Dir:        dir,
		ExpectPath: filepath.Join(dir, "expected.out"),
		Stdout:     &stdout,
	})
	if err != nil {
		t.Fatalf("run maxand: %v", err)
	}
	if !res.Matched {
		t.Fatalf("expected transcript match")
	}
	if got := strings.TrimSpace(stdout.String()); got != "Maximum AND value: 8" {
		t.Fatalf("unexpected tee output %q", got)
	}
}

func TestRunPassesArgs(t *testing.T) {
	requireGo(t)
	res, err := Run(context.Background(), Options{
		Dir:  filepath.Join("..", "..", "exercises", "josephus"),
		Args: []string{"41", "3"},
	})
	if err != nil {
		t.Fatalf("run josephus: %v", err)
	}
	if got := strings.TrimSpace(string(res.Stdout)); got != "The last person at index: 30" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunDetectsMismatch(t *testing.T) {
	requireGo(t)
	expect := filepath.Join(t.TempDir(), "bad.out")
	if err := os.WriteFile(expect, []byte("unexpected output\n"), 0o644); err != nil {
		t.Fatalf("write expect: %v", err)
	}
	_, err := Run(context.Background(), Options{
		Dir:        filepath.Join("..", "..", "exercises", "maxand"),
		ExpectPath: expect,
	})
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestRunRequiresDir(t *testing.T) {
	if _, err := Run(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error without dir")
	}
}

func TestRunMissingGoBinary(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Dir:      t.TempDir(),
		GoBinary: filepath.Join(t.TempDir(), "no-such-go"),
	})
	if err == nil || !strings.Contains(err.Error(), "resolve go") {
		t.Fatalf("expected resolve error, got %v", err)
	}
}

func TestCompareOutputTrimsWhitespace(t *testing.T) {
	expect := filepath.Join(t.TempDir(), "expected.out")
	if err := os.WriteFile(expect, []byte("a\nb\n\n"), 0o644); err != nil {
		t.Fatalf("write expect: %v", err)
	}
	if err := CompareOutput(expect, []byte("  a\nb")); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := CompareOutput(expect, []byte("a\nc")); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestPrependPathToEnv(t *testing.T) {
	dir := t.TempDir()
	const oldPath = "/usr/bin"
	got := pathValue(prependPathToEnv([]string{"HOME=/root", "PATH=" + oldPath}, dir))
	want := dir + string(os.PathListSeparator) + oldPath
	if got != want {
		t.Fatalf("prependPathToEnv path=%s, want %s", got, want)
	}

	got = pathValue(prependPathToEnv([]string{"PATH="}, dir))
	if got != dir {
		t.Fatalf("prependPathToEnv empty PATH=%s, want %s", got, dir)
	}

	got = pathValue(prependPathToEnv([]string{"HOME=/root"}, dir))
	if got != dir {
		t.Fatalf("prependPathToEnv missing PATH=%s, want %s", got, dir)
	}
}

func pathValue(env []string) string {
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			return strings.TrimPrefix(kv, "PATH=")
		}
	}
	return ""
}

func requireGo(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go binary not found on PATH")
	}
}
