// Package report defines the notification value shared by configuration
// validation and rule findings, and the console writer that prints them.
package report

import (
	"fmt"
	"strings"
)

// Level is the severity attached to a notification.
type Level int

const (
	// LevelInfo is informational and never fails a run.
	LevelInfo Level = iota
	// LevelWarning is the default for findings and config validation.
	LevelWarning
	// LevelError marks findings the user configured as errors.
	LevelError
)

// String returns the lowercase level name used in config files and output.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel maps a severity name to a Level. Unknown names report false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo, true
	case "warning", "warn":
		return LevelWarning, true
	case "error":
		return LevelError, true
	}
	return LevelWarning, false
}

// Location points at the source element a notification refers to.
// The zero value means "no location".
type Location struct {
	Path   string
	Line   int // 1-indexed.
	Column int // 1-indexed.
}

// IsZero reports whether the location carries no information.
func (l Location) IsZero() bool {
	return l.Path == "" && l.Line == 0 && l.Column == 0
}

// String renders path:line:col, dropping the parts that are unset.
func (l Location) String() string {
	switch {
	case l.Line == 0:
		return l.Path
	case l.Path == "":
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	default:
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
	}
}

// Notification is an immutable diagnostic. Message is always complete on its
// own; the remaining fields are context for reporters.
type Notification struct {
	Message  string
	Level    Level
	RuleSet  string
	Rule     string
	Location Location
}

// New returns a warning-level notification with only a message.
func New(message string) Notification {
	return Notification{Message: message, Level: LevelWarning}
}

// RuleID returns "ruleSet > Rule", or "" for notifications not produced by a rule.
func (n Notification) RuleID() string {
	if n.Rule == "" {
		return ""
	}
	if n.RuleSet == "" {
		return n.Rule
	}
	return n.RuleSet + " > " + n.Rule
}

// String renders the notification on a single line.
func (n Notification) String() string {
	var b strings.Builder
	if !n.Location.IsZero() {
		b.WriteString(n.Location.String())
		b.WriteString(": ")
	}
	if n.Rule != "" {
		b.WriteString(n.Rule)
		b.WriteString(": ")
	}
	b.WriteString(n.Message)
	return b.String()
}

// Messages extracts the message of every notification, in order.
func Messages(ns []Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Message
	}
	return out
}
