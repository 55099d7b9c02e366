// Package hook decides whether a commit message carries the issue key of the
// branch it is committed on, and inserts the key when configured to.
package hook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wahlandcase/attuned.issuekey/internal/message"
	"github.com/wahlandcase/attuned.issuekey/internal/models"
	"github.com/wahlandcase/attuned.issuekey/internal/patterns"
)

// Hook is anything the Dispatcher can run
type Hook interface {
	Name() string
	Run(ctx context.Context) models.Outcome
}

// MessageStore holds the commit message under edit
type MessageStore interface {
	Read() (message.Message, error)
	Write(message.Message) error
}

// Engine is the commit-msg issue key check
type Engine struct {
	Resolver            BranchResolver
	VCS                 VersionControl
	Patterns            *patterns.Set
	Store               MessageStore
	InsertAutomatically bool
	Logger              zerolog.Logger

	last Decision
}

// Options configures NewEngine
type Options struct {
	VCS                 VersionControl
	Rebase              RebaseStateReader
	Patterns            *patterns.Set
	Store               MessageStore
	InsertAutomatically bool
	Logger              zerolog.Logger
}

// NewEngine wires an Engine from opts
func NewEngine(opts Options) *Engine {
	return &Engine{
		Resolver:            BranchResolver{VCS: opts.VCS, Rebase: opts.Rebase},
		VCS:                 opts.VCS,
		Patterns:            opts.Patterns,
		Store:               opts.Store,
		InsertAutomatically: opts.InsertAutomatically,
		Logger:              opts.Logger,
	}
}

// Decision is the result of evaluating one message
type Decision struct {
	Outcome models.Outcome
	// Branch is the resolved branch, empty if resolution failed
	Branch string
	// Key is the extracted issue key, empty if not reached or not found
	Key string
	// Message is the rewritten message when Rewritten is true
	Message   message.Message
	Rewritten bool
}

func (e *Engine) Name() string {
	return "issue-key"
}

// Run reads the message, evaluates it, and writes it back once if the key
// was inserted.
func (e *Engine) Run(ctx context.Context) models.Outcome {
	return e.Check(ctx).Outcome
}

// Check is Run returning the full Decision
func (e *Engine) Check(ctx context.Context) Decision {
	e.last = e.check(ctx)
	return e.last
}

// Details describes the last run for reporting
func (e *Engine) Details() map[string]string {
	details := map[string]string{}
	if e.last.Branch != "" {
		details["branch"] = e.last.Branch
	}
	if e.last.Key != "" {
		details["key"] = e.last.Key
	}
	if e.last.Rewritten {
		details["rewritten"] = "true"
	}
	return details
}

func (e *Engine) check(ctx context.Context) Decision {
	msg, err := e.Store.Read()
	if err != nil {
		return Decision{Outcome: models.Fail(err.Error())}
	}

	decision := e.Evaluate(ctx, msg)
	if decision.Rewritten {
		if err := e.Store.Write(decision.Message); err != nil {
			return Decision{Outcome: models.Fail(err.Error()), Branch: decision.Branch, Key: decision.Key}
		}
		e.Logger.Info().Str("key", decision.Key).Msg("Inserted issue key into commit subject")
	}
	return decision
}

// Evaluate decides the outcome for msg without touching the store
func (e *Engine) Evaluate(ctx context.Context, msg message.Message) Decision {
	branch, err := e.Resolver.Resolve(ctx)
	if err != nil {
		return Decision{Outcome: models.Fail(err.Error())}
	}
	e.Logger.Debug().Str("branch", branch).Msg("Resolved branch")

	d := Decision{Branch: branch}

	if pattern, ok := e.Patterns.MatchIgnore(branch); ok {
		e.Logger.Debug().Str("pattern", pattern).Msg("Branch is ignored")
		d.Outcome = models.Warn(fmt.Sprintf("Ignoring branch '%s' (matches '%s')", branch, pattern))
		return d
	}

	subject, hasSubject := msg.Subject()
	text := subject.Text()

	if hasSubject && e.Patterns.IsMagic(text) {
		e.Logger.Debug().Str("subject", text).Msg("Subject matches magic pattern")
		d.Outcome = models.Pass
		return d
	}

	key, ok := e.Patterns.ExtractKey(branch)
	if !ok {
		d.Outcome = models.Fail(fmt.Sprintf("Current branch '%s' does not match the Issue Key pattern '%s'",
			branch, e.Patterns.IssuePattern()))
		return d
	}
	d.Key = key
	e.Logger.Debug().Str("key", key).Msg("Extracted issue key")

	if hasSubject && strings.HasPrefix(text, key) {
		d.Outcome = models.Pass
		return d
	}

	merged, err := e.VCS.LastCommitWasMerge(ctx)
	if err != nil {
		d.Outcome = models.Fail((&MergeCheckError{Err: err}).Error())
		return d
	}
	e.Logger.Debug().Bool("merge", merged).Msg("Checked for merge")

	if merged {
		mergePattern, err := e.Patterns.MergeFor(key)
		if err != nil {
			d.Outcome = models.Fail(err.Error())
			return d
		}
		if hasSubject && mergePattern.MatchString(text) {
			d.Outcome = models.Pass
			return d
		}
		// A failed merge-phrasing check still falls through to insertion
		if !e.InsertAutomatically {
			d.Outcome = models.Fail(fmt.Sprintf("Subject '%s' does not contain the Issue Key '%s' or match Issue Key Merge pattern '%s'",
				text, key, mergePattern))
			return d
		}
	} else if !e.InsertAutomatically {
		d.Outcome = models.Fail(fmt.Sprintf("Subject '%s' does not contain the Issue Key '%s'", text, key))
		return d
	}

	rewritten, err := msg.PrefixSubject(key)
	if err != nil {
		if errors.Is(err, message.ErrNoSubject) {
			d.Outcome = models.Fail(fmt.Sprintf("Commit message has no subject to insert the Issue Key '%s' into", key))
			return d
		}
		d.Outcome = models.Fail(err.Error())
		return d
	}

	d.Outcome = models.Pass
	d.Message = rewritten
	d.Rewritten = true
	return d
}
