package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// fakeRunner records commands and lets each test simulate what the tool leaves behind.
type fakeRunner struct {
	commands []Command
	failAt   int
	effect   func(cmd Command)
}

func (r *fakeRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	r.commands = append(r.commands, cmd)
	result := Result{Command: cmd}
	if r.failAt == len(r.commands) {
		result.ExitCode = 2
		return result, &ExitError{Result: result}
	}
	if r.effect != nil {
		r.effect(cmd)
	}
	return result, nil
}

func writeFile(t *testing.T, filePath, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filePath), 0775); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0664); err != nil {
		t.Fatal(err)
	}
}
