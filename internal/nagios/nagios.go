package nagios

import "fmt"

// Severity is a Nagios plugin state. The zero value is OK.
type Severity int

const (
	OK Severity = iota
	Warning
	Critical
	Unknown
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps a severity to the plugin exit code the scheduler consumes:
// 0=OK, 1=WARNING, 2=CRITICAL, 3=UNKNOWN.
func (s Severity) ExitCode() int {
	switch s {
	case OK:
		return 0
	case Warning:
		return 1
	case Critical:
		return 2
	default:
		return 3
	}
}

// StatusError carries a plugin severity out of a command so main can map
// it to the process exit code. The output lines themselves are written by
// the command before returning; Message only exists for logging.
type StatusError struct {
	Severity Severity
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return e.Severity.String()
	}
	return fmt.Sprintf("%s: %s", e.Severity, e.Message)
}

// Status wraps a severity and message into a StatusError.
func Status(sev Severity, format string, args ...any) *StatusError {
	return &StatusError{Severity: sev, Message: fmt.Sprintf(format, args...)}
}
