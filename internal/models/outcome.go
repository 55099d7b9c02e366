package models

// Outcome is the single result of one hook run: pass, warn or fail
type Outcome interface {
	isOutcome()
}

type outcomePass struct{}
type outcomeWarn struct{ Reason string }
type outcomeFail struct{ Reason string }

func (outcomePass) isOutcome() {}
func (outcomeWarn) isOutcome() {}
func (outcomeFail) isOutcome() {}

// Pass indicates the commit message satisfies the hook
var Pass Outcome = outcomePass{}

// Warn creates a non-blocking Outcome with a reason
func Warn(reason string) Outcome {
	return outcomeWarn{Reason: reason}
}

// Fail creates a blocking Outcome with a reason
func Fail(reason string) Outcome {
	return outcomeFail{Reason: reason}
}

// IsPass returns true if the outcome is Pass
func IsPass(o Outcome) bool {
	_, ok := o.(outcomePass)
	return ok
}

// IsWarn returns true if the outcome is a warning
func IsWarn(o Outcome) bool {
	_, ok := o.(outcomeWarn)
	return ok
}

// IsFail returns true if the outcome is a failure
func IsFail(o Outcome) bool {
	_, ok := o.(outcomeFail)
	return ok
}

// Reason returns the reason text for Warn or Fail outcomes
func Reason(o Outcome) string {
	if warn, ok := o.(outcomeWarn); ok {
		return warn.Reason
	}
	if fail, ok := o.(outcomeFail); ok {
		return fail.Reason
	}
	return ""
}

// Name returns "pass", "warn" or "fail"
func Name(o Outcome) string {
	switch o.(type) {
	case outcomePass:
		return "pass"
	case outcomeWarn:
		return "warn"
	case outcomeFail:
		return "fail"
	default:
		return "unknown"
	}
}
