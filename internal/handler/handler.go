package handler

import (
	"errors"
	"strings"

	"github.com/sesh22/eml/internal/loc"
)

// Handler collects diagnostics raised while scanning and compiling a single
// markup source. Ranged errors are resolved to line/column positions against
// the source text.
type Handler struct {
	sourcetext  string
	filename    string
	lineOffsets []int
	errors      []error
	warnings    []error
}

func NewHandler(sourcetext string, filename string) *Handler {
	return &Handler{
		sourcetext:  sourcetext,
		filename:    filename,
		lineOffsets: lineOffsets(sourcetext),
		errors:      make([]error, 0),
		warnings:    make([]error, 0),
	}
}

func lineOffsets(sourcetext string) []int {
	offsets := []int{0}
	for i := 0; i < len(sourcetext); i++ {
		if sourcetext[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func (h *Handler) HasErrors() bool {
	return len(h.errors) > 0
}

func (h *Handler) AppendError(err error) {
	h.errors = append(h.errors, err)
}

func (h *Handler) AppendWarning(err error) {
	h.warnings = append(h.warnings, err)
}

// GetLineAndColumn resolves a byte offset to a 1-based line and column.
func (h *Handler) GetLineAndColumn(l loc.Loc) (int, int) {
	line := 1
	for i, offset := range h.lineOffsets {
		if offset > l.Start {
			break
		}
		line = i + 1
	}
	return line, l.Start - h.lineOffsets[line-1] + 1
}

func (h *Handler) Errors() []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0)
	for _, err := range h.errors {
		if err != nil {
			msgs = append(msgs, ErrorToMessage(h, loc.ErrorType, err))
		}
	}
	return msgs
}

func (h *Handler) Warnings() []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0)
	for _, err := range h.warnings {
		if err != nil {
			msgs = append(msgs, ErrorToMessage(h, loc.WarningType, err))
		}
	}
	return msgs
}

func (h *Handler) Diagnostics() []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0)
	msgs = append(msgs, h.Errors()...)
	msgs = append(msgs, h.Warnings()...)
	return msgs
}

func ErrorToMessage(h *Handler, severity loc.DiagnosticSeverity, err error) loc.DiagnosticMessage {
	var rangedError *loc.ErrorWithRange
	switch {
	case errors.As(err, &rangedError):
		line, column := h.GetLineAndColumn(rangedError.Range.Loc)
		location := &loc.DiagnosticLocation{
			File:   h.filename,
			Line:   line,
			Column: column,
			Length: rangedError.Range.Len,
		}
		message := rangedError.ToMessage(location)
		message.Severity = int(severity)
		return message
	default:
		return loc.DiagnosticMessage{Severity: int(severity), Text: err.Error()}
	}
}

// LineText returns the text of a 1-based line, for diagnostic rendering.
func (h *Handler) LineText(line int) string {
	if line < 1 || line > len(h.lineOffsets) {
		return ""
	}
	start := h.lineOffsets[line-1]
	end := len(h.sourcetext)
	if line < len(h.lineOffsets) {
		end = h.lineOffsets[line] - 1
	}
	return strings.TrimSuffix(h.sourcetext[start:end], "\r")
}
