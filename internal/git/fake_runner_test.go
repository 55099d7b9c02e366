package git

import (
	"context"
	"strings"
)

// fakeRunner returns canned results keyed by the joined argv
type fakeRunner struct {
	results map[string]ExecResult
	calls   []ExecSpec
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{results: make(map[string]ExecResult)}
}

func (f *fakeRunner) on(argv string, res ExecResult) *fakeRunner {
	f.results[argv] = res
	return f
}

func (f *fakeRunner) Run(ctx context.Context, spec ExecSpec) ExecResult {
	f.calls = append(f.calls, spec)
	if res, ok := f.results[strings.Join(spec.Argv, " ")]; ok {
		return res
	}
	return ExecResult{ErrorKind: "exit", ExitCode: 128, Stderr: "fatal: unexpected command"}
}
