package diag

import (
	"encoding/json"
	"fmt"
	"go/token"
	"io"
	"sync"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type jsonDiagnostic struct {
	Severity Severity `json:"severity"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
}

// Reporter collects diagnostics and streams them to a writer in either text
// or json format. A nil writer discards output but still counts issues.
type Reporter struct {
	mu       sync.Mutex
	w        io.Writer
	format   string
	fset     *token.FileSet
	errors   int
	warnings int
}

// NewReporter returns a reporter writing to w. Unknown formats fall back to
// text.
func NewReporter(w io.Writer, format string) *Reporter {
	if format != "json" {
		format = "text"
	}
	return &Reporter{w: w, format: format}
}

// SetFileSet installs the file set used to resolve token.Pos values.
func (r *Reporter) SetFileSet(fset *token.FileSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fset = fset
}

// Error reports an error at pos.
func (r *Reporter) Error(pos token.Pos, msg string) {
	r.report(SeverityError, r.position(pos), msg)
}

// Errorf reports an error without a source location.
func (r *Reporter) Errorf(format string, args ...any) {
	r.report(SeverityError, token.Position{}, fmt.Sprintf(format, args...))
}

// Warning reports a warning at pos.
func (r *Reporter) Warning(pos token.Pos, msg string) {
	r.report(SeverityWarning, r.position(pos), msg)
}

// Warningf reports a warning without a source location.
func (r *Reporter) Warningf(format string, args ...any) {
	r.report(SeverityWarning, token.Position{}, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any error has been recorded.
func (r *Reporter) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors
}

// WarningCount returns the number of warnings reported so far.
func (r *Reporter) WarningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

func (r *Reporter) position(pos token.Pos) token.Position {
	r.mu.Lock()
	fset := r.fset
	r.mu.Unlock()
	if fset == nil || !pos.IsValid() {
		return token.Position{}
	}
	return fset.Position(pos)
}

func (r *Reporter) report(sev Severity, pos token.Position, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch sev {
	case SeverityError:
		r.errors++
	case SeverityWarning:
		r.warnings++
	}
	if r.w == nil {
		return
	}
	if r.format == "json" {
		data, err := json.Marshal(jsonDiagnostic{
			Severity: sev,
			File:     pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
			Message:  msg,
		})
		if err != nil {
			fmt.Fprintf(r.w, "%s: %s\n", sev, msg)
			return
		}
		fmt.Fprintf(r.w, "%s\n", data)
		return
	}
	if pos.IsValid() {
		fmt.Fprintf(r.w, "%s: %s: %s\n", pos, sev, msg)
		return
	}
	fmt.Fprintf(r.w, "%s: %s\n", sev, msg)
}
