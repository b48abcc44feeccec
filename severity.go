package bunaudit

import "fmt"

// Severity is a finding's severity level, ordered Info < Warn < High. Info
// is the zero value and the default policy threshold.
type Severity uint

const (
	Info Severity = iota
	Warn
	High
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if s > High {
		return nil, fmt.Errorf("bunaudit: invalid severity %d", uint(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "info":
		*s = Info
	case "warn":
		*s = Warn
	case "high":
		*s = High
	default:
		return fmt.Errorf("bunaudit: unknown severity %q", string(b))
	}
	return nil
}

// ParseSeverity parses a severity threshold flag value ("info", "warn", or
// "high").
func ParseSeverity(s string) (Severity, error) {
	var sev Severity
	if err := sev.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return sev, nil
}
