package eml

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestScanEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ampersand", "a&amp;b", "a&b"},
		{"ellipsis", "x&hellip;", "x…"},
		{"angle brackets", "&lt;b&gt;", "<b>"},
		{"unknown name", "&unknown; text", "&unknown; text"},
		{"missing semicolon", "&amp", "&amp"},
		{"name over bound", "&verylongname;", "&verylongname;"},
		{"bare ampersand", "a & b", "a & b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Scan(tt.input)
			assert.NilError(t, err)
			assert.Equal(t, 1, len(tokens))
			assert.Equal(t, ContentToken, tokens[0].Type)
			assert.Equal(t, tt.want, tokens[0].Data)
		})
	}
}

func TestScanAttributeEntities(t *testing.T) {
	tokens, err := Scan(`<a title="&quot;x&quot;">y</a>`)
	assert.NilError(t, err)
	var val string
	for _, tok := range tokens {
		if tok.Type == AttrValueToken {
			val = tok.Data
		}
	}
	assert.Equal(t, `"x"`, val)
}

func TestScanRawText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script body", `<script>if (a < b) { }</script>`, "if (a < b) { }"},
		{"style body", `<style>a > b { color: red }</style>`, "a > b { color: red }"},
		{"cdata", `<div><![CDATA[  keep  < this ]]></div>`, "  keep  < this "},
		{"whitespace-only cdata", `<div><![CDATA[   ]]></div>`, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Scan(tt.input)
			assert.NilError(t, err)
			var raw []string
			for _, tok := range tokens {
				if tok.Type == RawTextToken {
					raw = append(raw, tok.Data)
				}
			}
			assert.Equal(t, 1, len(raw))
			assert.Equal(t, tt.want, raw[0])
		})
	}
}

func TestScanSelfClosedRawTextElement(t *testing.T) {
	// a self-closed script has no body to scan literally
	tokens, err := Scan(`<script />x`)
	assert.NilError(t, err)
	want := []TokenType{OpenToken, StartTagToken, SlashToken, CloseToken, ContentToken}
	assert.Equal(t, len(want), len(tokens))
	for i, tok := range tokens {
		assert.Equal(t, want[i], tok.Type)
	}
}

func TestScanParams(t *testing.T) {
	t.Run("content position", func(t *testing.T) {
		tokens, err := Scan(`<div>#param{greeting}</div>`)
		assert.NilError(t, err)
		assert.Equal(t, ContentParamToken, tokens[3].Type)
		assert.Equal(t, "greeting", tokens[3].Data)
	})
	t.Run("top level", func(t *testing.T) {
		tokens, err := Scan(`#param{root}`)
		assert.NilError(t, err)
		assert.Equal(t, 1, len(tokens))
		assert.Equal(t, ContentParamToken, tokens[0].Type)
	})
	t.Run("attribute position", func(t *testing.T) {
		tokens, err := Scan(`<a href="/x/#param{id}">y</a>`)
		assert.NilError(t, err)
		var got []Token
		for _, tok := range tokens {
			if tok.Type == AttrValueToken || tok.Type == AttrParamToken {
				got = append(got, tok)
			}
		}
		assert.Equal(t, 2, len(got))
		assert.Equal(t, AttrValueToken, got[0].Type)
		assert.Equal(t, "/x/", got[0].Data)
		assert.Equal(t, AttrParamToken, got[1].Type)
		assert.Equal(t, "id", got[1].Data)
	})
}

func TestScanDiscardedStructures(t *testing.T) {
	t.Run("comment splits nothing", func(t *testing.T) {
		tokens, err := Scan(`a<!-- note -->b`)
		assert.NilError(t, err)
		assert.Equal(t, 1, len(tokens))
		assert.Equal(t, "ab", tokens[0].Data)
	})
	t.Run("comment between attributes", func(t *testing.T) {
		tokens, err := Scan(`<div <!-- note --> id="a">x</div>`)
		assert.NilError(t, err)
		for _, tok := range tokens {
			assert.Assert(t, tok.Data != " note ")
		}
	})
	t.Run("doctype before document", func(t *testing.T) {
		tokens, err := Scan("<!doctype html>\n<p>x</p>")
		assert.NilError(t, err)
		assert.Equal(t, OpenToken, tokens[0].Type)
		assert.Equal(t, "p", tokens[1].Data)
	})
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated attribute at EOF", `<div class="x>`},
		{"unescaped bracket in attribute", `<div class="x> <span>`},
		{"double open", `<<`},
		{"separator without field", `<div =>`},
		{"unquoted attribute value", `<div id=a>`},
		{"param between attributes", `<div #param{x}>`},
		{"param in tag name", `<#param{x}>`},
		{"unclosed param", `<div>#param{x`},
		{"unclosed comment", `<!-- unclosed`},
		{"unclosed doctype", `<!DOCTYPE html`},
		{"unclosed cdata", `<div><![CDATA[x`},
		{"unclosed raw text", `<script>var x = 1;`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Scan(tt.input)
			assert.Assert(t, err != nil, "Scan() = %v, want error", tokens)
			var serr *ScanError
			assert.Assert(t, errors.As(err, &serr))
		})
	}
}

func TestScanErrorContext(t *testing.T) {
	_, err := Scan(`<div class="x> <span>`)
	var serr *ScanError
	assert.Assert(t, errors.As(err, &serr))
	assert.Equal(t, ScanAttrDouble, serr.State)
	assert.Equal(t, "<", serr.Offending)
	assert.Equal(t, "s", serr.Next)
	assert.Equal(t, AttrDoubleOpenToken, serr.LastToken.Type)
	assert.Equal(t, AttrValueToken, serr.Buffer.Type)
	assert.Equal(t, "x> ", serr.Buffer.Data)
}

func TestScanWhitespaceAfterTagClose(t *testing.T) {
	// line breaks after a tag close are dropped, spaces begin content
	tokens, err := Scan("<ul>\n  <li>one</li>\n</ul>")
	assert.NilError(t, err)
	for _, tok := range tokens {
		if tok.Type == ContentToken {
			assert.Equal(t, "one", tok.Data)
		}
	}
}
