package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Writer prints notifications to a console, one per line.
type Writer struct {
	out      io.Writer
	location *color.Color
	rule     *color.Color
	levels   map[Level]*color.Color
}

// NewWriter returns a Writer for out. Colors are forced on or off by useColor
// rather than detected from the terminal, so output is reproducible.
func NewWriter(out io.Writer, useColor bool) *Writer {
	w := &Writer{
		out:      out,
		location: color.New(color.Bold),
		rule:     color.New(color.FgCyan),
		levels: map[Level]*color.Color{
			LevelInfo:    color.New(color.FgBlue),
			LevelWarning: color.New(color.FgYellow),
			LevelError:   color.New(color.FgRed, color.Bold),
		},
	}
	for _, c := range w.colors() {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return w
}

func (w *Writer) colors() []*color.Color {
	cs := []*color.Color{w.location, w.rule}
	for _, c := range w.levels {
		cs = append(cs, c)
	}
	return cs
}

// Write prints every notification in order.
func (w *Writer) Write(ns []Notification) error {
	for _, n := range ns {
		if _, err := fmt.Fprintln(w.out, w.line(n)); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// Summary prints the closing totals line.
func (w *Writer) Summary(files, findings int) error {
	noun := "findings"
	if findings == 1 {
		noun = "finding"
	}
	_, err := fmt.Fprintf(w.out, "%d %s in %d files\n", findings, noun, files)
	return err
}

func (w *Writer) line(n Notification) string {
	var b strings.Builder
	if !n.Location.IsZero() {
		b.WriteString(w.location.Sprint(n.Location.String()))
		b.WriteByte(' ')
	}
	lc, ok := w.levels[n.Level]
	if !ok {
		lc = w.levels[LevelWarning]
	}
	b.WriteString(lc.Sprint(n.Level.String()))
	if id := n.RuleID(); id != "" {
		b.WriteString(" [")
		b.WriteString(w.rule.Sprint(id))
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(n.Message)
	return b.String()
}

// Format renders notifications as plain text, one per line, in the layout
// used by golden files: "line:col Rule message".
func Format(ns []Notification) string {
	var b strings.Builder
	for _, n := range ns {
		fmt.Fprintf(&b, "%d:%d %s %s\n", n.Location.Line, n.Location.Column, n.Rule, n.Message)
	}
	return b.String()
}
