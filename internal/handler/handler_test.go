package handler

import (
	"errors"
	"testing"

	"github.com/sesh22/eml/internal/loc"
)

func TestGetLineAndColumn(t *testing.T) {
	h := NewHandler("ab\ncdef\n\nx", "test.eml")
	tests := []struct {
		name   string
		start  int
		line   int
		column int
	}{
		{"first byte", 0, 1, 1},
		{"end of first line", 1, 1, 2},
		{"start of second line", 3, 2, 1},
		{"inside second line", 5, 2, 3},
		{"after empty line", 9, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, column := h.GetLineAndColumn(loc.Loc{Start: tt.start})
			if line != tt.line || column != tt.column {
				t.Errorf("GetLineAndColumn(%d) = %d:%d, want %d:%d", tt.start, line, column, tt.line, tt.column)
			}
		})
	}
}

func TestDiagnostics(t *testing.T) {
	h := NewHandler("hello\nworld", "test.eml")
	h.AppendError(&loc.ErrorWithRange{
		Code:  loc.ERROR_UNEXPECTED_CHARACTER,
		Text:  "boom",
		Range: loc.Range{Loc: loc.Loc{Start: 6}, Len: 5},
	})
	h.AppendWarning(errors.New("plain warning"))

	if !h.HasErrors() {
		t.Fatal("HasErrors() = false, want true")
	}
	msgs := h.Diagnostics()
	if len(msgs) != 2 {
		t.Fatalf("len(Diagnostics()) = %d, want 2", len(msgs))
	}
	if msgs[0].Location == nil || msgs[0].Location.Line != 2 || msgs[0].Location.Column != 1 {
		t.Errorf("ranged error location = %+v, want line 2 column 1", msgs[0].Location)
	}
	if msgs[1].Location != nil {
		t.Errorf("plain warning location = %+v, want nil", msgs[1].Location)
	}
}

func TestLineText(t *testing.T) {
	h := NewHandler("hello\r\nworld", "test.eml")
	if got := h.LineText(1); got != "hello" {
		t.Errorf("LineText(1) = %q, want %q", got, "hello")
	}
	if got := h.LineText(2); got != "world" {
		t.Errorf("LineText(2) = %q, want %q", got, "world")
	}
}
