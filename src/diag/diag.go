// Package diag provides the compiler's diagnostic collection type.
//
// Diagnostics are collected into a Bag rather than returned eagerly, so that
// a phase can keep looking for further problems after the first one instead
// of aborting the user's build on the first typo it finds. This mirrors
// vslc's util.perror, adapted from a channel-backed concurrent collector to
// a plain slice: this compiler's pipeline is single-threaded end to end, so
// there is no concurrent writer to synchronise against.
package diag

import (
	"fmt"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Severity classifies a Diagnostic.
type Severity int

// Severities a Diagnostic can carry.
const (
	Error Severity = iota
	Warning
)

// String returns a print friendly label for sev.
func (sev Severity) String() string {
	if sev == Error {
		return "error"
	}
	return "warning"
}

// Span is a byte range in the (normalized) source text, inclusive of Start
// and exclusive of End.
type Span struct {
	Start int
	End   int
}

// Label attaches a human message to a Span within a Diagnostic.
type Label struct {
	Span    Span
	Message string
	Primary bool // Primary labels point at the offending code; secondary labels add context.
}

// Diagnostic is a single compiler-reported problem.
type Diagnostic struct {
	Severity Severity
	Message  string
	Labels   []Label
}

// Bag collects Diagnostics for a single compiler phase.
//
// Bag is deliberately not safe for concurrent use: this driver's pipeline
// is single-threaded cooperative, so there is never more than one goroutine
// appending to a Bag at a time.
type Bag struct {
	items []Diagnostic
}

// ---------------------
// ----- functions -----
// ---------------------

// Errorf appends an error-severity Diagnostic with the given message and
// labeled spans.
func (b *Bag) Errorf(labels []Label, format string, args ...interface{}) {
	b.items = append(b.items, Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Labels:   labels,
	})
}

// Warnf appends a warning-severity Diagnostic with the given message and
// labeled spans.
func (b *Bag) Warnf(labels []Label, format string, args ...interface{}) {
	b.items = append(b.items, Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Labels:   labels,
	})
}

// PrimaryLabel is a convenience constructor for a primary Label.
func PrimaryLabel(span Span, message string) Label {
	return Label{Span: span, Message: message, Primary: true}
}

// HasErrors reports whether the Bag holds at least one error-severity
// Diagnostic.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Items returns the collected diagnostics in report order.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// CountErrors returns the number of error-severity diagnostics in the Bag.
func (b *Bag) CountErrors() int {
	n := 0
	for _, d := range b.items {
		if d.Severity == Error {
			n++
		}
	}
	return n
}

// CountWarnings returns the number of warning-severity diagnostics in the
// Bag.
func (b *Bag) CountWarnings() int {
	n := 0
	for _, d := range b.items {
		if d.Severity == Warning {
			n++
		}
	}
	return n
}

// Render formats every collected Diagnostic for stderr, followed by a
// summary line: "N error(s) generated." or "N warning(s) generated.".
func (b *Bag) Render(src string) string {
	var sb strings.Builder
	for _, d := range b.items {
		sb.WriteString(d.Severity.String())
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		sb.WriteByte('\n')
		for _, l := range d.Labels {
			sb.WriteString("  --> byte ")
			fmt.Fprintf(&sb, "%d..%d", l.Span.Start, l.Span.End)
			if l.Message != "" {
				sb.WriteString(": ")
				sb.WriteString(l.Message)
			}
			if l.Span.Start >= 0 && l.Span.End <= len(src) && l.Span.End >= l.Span.Start {
				sb.WriteString(" (")
				sb.WriteString(src[l.Span.Start:l.Span.End])
				sb.WriteString(")")
			}
			sb.WriteByte('\n')
		}
	}
	if n := b.CountErrors(); n > 0 {
		fmt.Fprintf(&sb, "%d error(s) generated.\n", n)
	} else if n := b.CountWarnings(); n > 0 {
		fmt.Fprintf(&sb, "%d warning(s) generated.\n", n)
	}
	return sb.String()
}
