// Package toolchain drives the vendor synthesis tools and collects what they report.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/daedaleanai/runsyn/log"
)

// Command is an external program invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current one.
	Dir string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result describes a finished command.
type Result struct {
	Command  Command
	ExitCode int
	Duration time.Duration
	// LogFile holds the command output when it was not streamed to the terminal.
	LogFile string
}

// ExitError is returned for commands that terminated with a non-zero exit status.
type ExitError struct {
	Result Result
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("'%s' failed with exit status %d", e.Result.Command, e.Result.ExitCode)
	if e.Result.LogFile != "" {
		msg += fmt.Sprintf(" (see '%s')", e.Result.LogFile)
	}
	return msg
}

// Runner runs external commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Stream sends the tool output to os.Stderr. Otherwise it goes to `<dir>/<tool>.log`
	// and a spinner is shown.
	Stream bool
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	result := Result{Command: cmd}

	executable, err := exec.LookPath(cmd.Name)
	if err != nil {
		return result, errors.Wrapf(err, "'%s' is not available", cmd.Name)
	}
	// Relative paths are found from here, but the child starts in cmd.Dir.
	executable, err = filepath.Abs(executable)
	if err != nil {
		return result, errors.Wrapf(err, "failed to resolve '%s'", cmd.Name)
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...)
	c.Dir = cmd.Dir
	if r.Stream {
		c.Stdout = os.Stderr
		c.Stderr = os.Stderr
	} else {
		result.LogFile = filepath.Join(cmd.Dir, filepath.Base(cmd.Name)+".log")
		logFile, err := os.Create(result.LogFile)
		if err != nil {
			return result, errors.Wrap(err, "failed to create tool log")
		}
		defer logFile.Close()
		c.Stdout = logFile
		c.Stderr = logFile

		log.Spinner.Suffix = " " + filepath.Base(cmd.Name)
		log.Spinner.Start()
		defer log.Spinner.Stop()
	}

	log.Debug("Running '%s' in '%s'.\n", cmd, cmd.Dir)
	start := time.Now()
	err = c.Run()
	result.Duration = time.Since(start)

	if ctx.Err() != nil {
		return result, errors.Wrapf(ctx.Err(), "'%s' was interrupted", cmd)
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, &ExitError{Result: result}
	}
	if err != nil {
		return result, errors.Wrapf(err, "failed to run '%s'", cmd)
	}
	return result, nil
}
