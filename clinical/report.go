// Package clinical implements the rule-based decision-support checks: alert
// evaluators over the reference tables, numeric calculators and the report
// aggregator. Every function is pure; reference tables are only read.
package clinical

import (
	"errors"
	"strings"
)

// ErrInvalidInput is returned by calculators given out-of-range numbers
var ErrInvalidInput = errors.New("invalid input")

// Severity is rendered as a leading symbol on the alert line
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityCritical
)

// Symbol returns the marker printed before the alert message
func (s Severity) Symbol() string {
	if s == SeverityCritical {
		return "🚨"
	}
	return "⚠️"
}

func (s Severity) String() string {
	if s == SeverityCritical {
		return "critical"
	}
	return "warning"
}

// Alert is a single finding
type Alert struct {
	Severity Severity
	Message  string
}

// String renders the alert as one report line
func (a Alert) String() string {
	return a.Severity.Symbol() + " " + a.Message
}

// Report is either empty, carrying the evaluator's "no findings" sentinel,
// or a non-empty ordered list of alerts. The sentinel never coexists with
// alerts.
type Report struct {
	alerts   []Alert
	sentinel string
}

func emptyReport(sentinel string) Report {
	return Report{sentinel: sentinel}
}

func newReport(alerts []Alert, sentinel string) Report {
	if len(alerts) == 0 {
		return emptyReport(sentinel)
	}
	return Report{alerts: alerts}
}

// Empty reports whether no alert fired
func (r Report) Empty() bool {
	return len(r.alerts) == 0
}

// Alerts returns a copy of the alerts in evaluation order
func (r Report) Alerts() []Alert {
	out := make([]Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// Sentinel returns the "no findings" message, or "" for a non-empty report
func (r Report) Sentinel() string {
	if r.Empty() {
		return r.sentinel
	}
	return ""
}

// Lines returns the rendered alert lines, or the sentinel alone
func (r Report) Lines() []string {
	if r.Empty() {
		return []string{r.sentinel}
	}
	lines := make([]string, len(r.alerts))
	for i, a := range r.alerts {
		lines[i] = a.String()
	}
	return lines
}

// Render joins the report into a multi-line string, preserving order
func (r Report) Render() string {
	return strings.Join(r.Lines(), "\n")
}

// Lookup is the single-result outcome of a lookup-style check. Found is false
// when the default "not available" text is returned.
type Lookup struct {
	Found bool
	Alert *Alert
	Text  string
}

// Render returns the alert line when one fired, otherwise the text
func (l Lookup) Render() string {
	if l.Alert != nil {
		return l.Alert.String()
	}
	return l.Text
}

// Section is a titled report, used when several evaluators feed one screen
type Section struct {
	Title  string
	Report Report
}

// RenderSections joins titled reports in the given order
func RenderSections(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Title)
		b.WriteString(":\n")
		b.WriteString(s.Report.Render())
	}
	return b.String()
}
