// Package eml converts raw markup text into a structured element tree for
// the surrounding templating library. The scanner turns bytes into a flat
// token sequence; the compiler reconstructs nested structure from it.
// Inline #param{...} placeholders stand in for content or attribute values
// substituted later.
package eml

import (
	"io"

	"github.com/sesh22/eml/internal/handler"
	"github.com/sesh22/eml/internal/loc"
)

type ParseOption func(*parseOptions)

type parseOptions struct {
	handler *handler.Handler
}

// ParseOptionWithHandler attaches a diagnostic sink to the parse.
func ParseOptionWithHandler(h *handler.Handler) ParseOption {
	return func(o *parseOptions) {
		o.handler = h
	}
}

// Parse reads markup from r and compiles it. On success it returns the
// ordered top-level content; a document with a single root yields one
// element. The two failure shapes are *ScanError and *MalformedError; the
// latter still carries the partial result.
func Parse(r io.Reader, opts ...ParseOption) ([]Content, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(source), opts...)
}

// ParseString is Parse over an in-memory source.
func ParseString(source string, opts ...ParseOption) ([]Content, error) {
	var options parseOptions
	for _, opt := range opts {
		opt(&options)
	}
	tokens, err := ScanWithHandler(source, options.handler)
	if err != nil {
		return nil, err
	}
	content, rest := Compile(tokens)
	if len(rest) > 0 {
		merr := &MalformedError{Compiled: content, Rest: rest}
		if options.handler != nil {
			options.handler.AppendError(&loc.ErrorWithRange{
				Code: loc.ERROR_LEFTOVER_TOKENS,
				Text: merr.Error(),
				Range: loc.Range{
					Loc: rest[0].Loc,
					Len: len(rest[0].Data),
				},
			})
		}
		return content, merr
	}
	return content, nil
}
