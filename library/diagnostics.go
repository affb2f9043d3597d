package library

import (
	"fmt"
	"log/slog"
)

// DiagnosticKind classifies a non-fatal problem met while reading or writing
// one of the flat files.
type DiagnosticKind string

const (
	KindMissingFile     DiagnosticKind = "missing_file"
	KindMalformedRecord DiagnosticKind = "malformed_record"
	KindDecodeError     DiagnosticKind = "decode_error"
	KindIOFailure       DiagnosticKind = "io_failure"
)

// Diagnostic describes a problem that was absorbed by a load operation.
// Line is 0 when the problem is not tied to a single line.
type Diagnostic struct {
	Kind    DiagnosticKind
	Path    string
	Line    int
	Message string
	Err     error
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("[%s] %s", d.Kind, d.Path)
	if d.Line > 0 {
		s += fmt.Sprintf(":%d", d.Line)
	}
	s += ": " + d.Message
	if d.Err != nil {
		s += ": " + d.Err.Error()
	}
	return s
}

// Diagnostics is the list of problems produced by one operation.
type Diagnostics []Diagnostic

func (ds Diagnostics) Has(kind DiagnosticKind) bool {
	return ds.Count(kind) > 0
}

func (ds Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Log writes every diagnostic at WARN level.
func (ds Diagnostics) Log(logger *slog.Logger) {
	for _, d := range ds {
		attrs := []any{"kind", string(d.Kind), "path", d.Path}
		if d.Line > 0 {
			attrs = append(attrs, "line", d.Line)
		}
		if d.Err != nil {
			attrs = append(attrs, "err", d.Err)
		}
		logger.Warn(d.Message, attrs...)
	}
}
