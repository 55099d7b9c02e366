package hook

import (
	"context"
	"errors"

	"github.com/wahlandcase/attuned.issuekey/internal/message"
	"github.com/wahlandcase/attuned.issuekey/internal/patterns"
)

type fakeVCS struct {
	branch     string
	branchErr  error
	merged     bool
	mergeErr   error
	mergeCalls int
}

func (f *fakeVCS) CurrentBranch(ctx context.Context) (string, error) {
	return f.branch, f.branchErr
}

func (f *fakeVCS) LastCommitWasMerge(ctx context.Context) (bool, error) {
	f.mergeCalls++
	return f.merged, f.mergeErr
}

type fakeRebase struct {
	name  string
	found bool
	err   error
	calls int
}

func (f *fakeRebase) RebaseHeadName(ctx context.Context) (string, bool, error) {
	f.calls++
	return f.name, f.found, f.err
}

type failingStore struct {
	msg      message.Message
	readErr  error
	writeErr error
}

func (s *failingStore) Read() (message.Message, error) {
	return s.msg, s.readErr
}

func (s *failingStore) Write(message.Message) error {
	return s.writeErr
}

var errBoom = errors.New("boom")

func patternsDefault() patterns.Sources {
	return patterns.Sources{}
}
