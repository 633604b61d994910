package lc3

import (
	"errors"
	"fmt"
	"time"
)

// ValueFormatError reports text that could not be parsed as a 16-bit value.
type ValueFormatError struct {
	Text string
	Err  error
}

func (e *ValueFormatError) Error() string {
	return fmt.Sprintf("invalid value %q: %v", e.Text, e.Err)
}

func (e *ValueFormatError) Unwrap() error { return e.Err }

// SessionStartupError means the simulator could not be spawned or never
// reached its ready prompt. It is fatal to the whole suite, not a
// per-case failure.
type SessionStartupError struct {
	Err error
}

func (e *SessionStartupError) Error() string {
	return fmt.Sprintf("simulator startup failed: %v", e.Err)
}

func (e *SessionStartupError) Unwrap() error { return e.Err }

// SimulationTimeout means no halt marker (or expected reply) appeared
// within the bounded wait. The session is torn down and only the
// current case fails.
type SimulationTimeout struct {
	Pattern string
	Waited  time.Duration
}

func (e *SimulationTimeout) Error() string {
	return fmt.Sprintf("no match for %q within %s", e.Pattern, e.Waited)
}

// SessionProtocolError means the simulator process exited or produced
// output the driver could not reconcile with its expectations.
type SessionProtocolError struct {
	Detail string
	Err    error
}

func (e *SessionProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session protocol error: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("session protocol error: %s", e.Detail)
}

func (e *SessionProtocolError) Unwrap() error { return e.Err }

// ResponseParseError means a simulator reply (register dump, memory
// translate) did not have the expected shape.
type ResponseParseError struct {
	Detail string
	Raw    string
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("cannot parse simulator reply: %s (got %q)", e.Detail, e.Raw)
}

// ErrorKind maps an error to the label used in failure reports.
// Unknown error types report as UnhandledError.
func ErrorKind(err error) string {
	var (
		vfe *ValueFormatError
		sse *SessionStartupError
		st  *SimulationTimeout
		spe *SessionProtocolError
		rpe *ResponseParseError
	)
	switch {
	case errors.As(err, &vfe):
		return "ValueFormatError"
	case errors.As(err, &sse):
		return "SessionStartupError"
	case errors.As(err, &st):
		return "SimulationTimeout"
	case errors.As(err, &spe):
		return "SessionProtocolError"
	case errors.As(err, &rpe):
		return "ResponseParseError"
	default:
		return "UnhandledError"
	}
}
