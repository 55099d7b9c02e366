package hook

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wahlandcase/attuned.issuekey/internal/models"
)

// Exit codes returned by Dispatch
const (
	ExitOK     = 0
	ExitFailed = 1
)

// Detailer is implemented by hooks that can describe their last run
type Detailer interface {
	Details() map[string]string
}

// Report is what the Dispatcher hands to a Reporter for each hook
type Report struct {
	Hook    string
	Outcome models.Outcome
	Details map[string]string
}

// Reporter presents hook results to the user
type Reporter interface {
	Report(r Report) error
}

// Dispatcher runs hooks in order and turns their outcomes into an exit code
type Dispatcher struct {
	Reporter Reporter
	Logger   zerolog.Logger
}

// ExitCode maps an outcome to a process exit status. Warnings never block.
func ExitCode(o models.Outcome) int {
	if models.IsFail(o) {
		return ExitFailed
	}
	return ExitOK
}

// Dispatch runs every hook and reports each outcome. The exit code is
// ExitFailed if any hook failed.
func (d *Dispatcher) Dispatch(ctx context.Context, hooks ...Hook) int {
	code := ExitOK
	for _, h := range hooks {
		outcome := h.Run(ctx)

		report := Report{Hook: h.Name(), Outcome: outcome}
		if detailer, ok := h.(Detailer); ok {
			report.Details = detailer.Details()
		}

		d.Logger.Debug().
			Str("hook", report.Hook).
			Str("outcome", models.Name(outcome)).
			Str("reason", models.Reason(outcome)).
			Msg("Hook finished")

		if d.Reporter != nil {
			if err := d.Reporter.Report(report); err != nil {
				d.Logger.Warn().Err(err).Str("hook", report.Hook).Msg("Failed to report outcome")
			}
		}

		if c := ExitCode(outcome); c > code {
			code = c
		}
	}
	return code
}
