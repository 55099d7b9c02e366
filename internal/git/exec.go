package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// ExecSpec describes one command invocation. Argv[0] is the program.
type ExecSpec struct {
	Argv []string
	// Dir is the working directory; empty means the current directory
	Dir string
}

// ExecResult captures the outcome of a command
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// ErrorKind is "" on success, otherwise "exit", "spawn" or "canceled"
	ErrorKind string
}

// Runner executes commands. Tests swap in a fake.
type Runner interface {
	Run(ctx context.Context, spec ExecSpec) ExecResult
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, spec ExecSpec) ExecResult {
	if len(spec.Argv) == 0 {
		return ExecResult{ErrorKind: "spawn", Stderr: "empty argv", ExitCode: -1}
	}

	cmd := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res
	}

	if ctx.Err() != nil {
		res.ErrorKind = "canceled"
		res.ExitCode = -1
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ErrorKind = "exit"
		res.ExitCode = exitErr.ExitCode()
		return res
	}

	res.ErrorKind = "spawn"
	res.ExitCode = -1
	if res.Stderr == "" {
		res.Stderr = err.Error()
	}
	return res
}
