package eml

import (
	"strings"
	"testing"

	"github.com/sesh22/eml/internal/handler"
	"github.com/sesh22/eml/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html/atom"
)

func TestParse(t *testing.T) {
	source := test_utils.Dedent(`
		<!DOCTYPE html>
		<article class="post featured">
			<h1>#param{title}</h1>
			<p>
				Written by #param{author}&hellip;
			</p>
		</article>
	`)
	got, err := Parse(strings.NewReader(source))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(got))

	article := got[0].(*Element)
	assert.Equal(t, atom.Article, article.DataAtom)
	val, ok := article.Attribute("class")
	assert.True(t, ok)
	assert.Equal(t, AttrList{"post", "featured"}, val)
	assert.Equal(t, 2, len(article.Children))

	h1 := article.Children[0].(*Element)
	assert.Equal(t, []Content{Param("title")}, h1.Children)

	p := article.Children[1].(*Element)
	assert.Equal(t, []Content{Text("Written by "), Param("author"), Text("…")}, p.Children)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"stray end tag", `</div>`},
		{"extra end tag after root", `<div>x</div></span>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := ParseString(tt.source)
			var merr *MalformedError
			assert.ErrorAs(t, err, &merr)
			assert.NotEmpty(t, merr.Rest)
			assert.Equal(t, content, merr.Compiled)
		})
	}
}

func TestParseWithHandlerWarnings(t *testing.T) {
	source := "<p>\n &x; tea</p>"
	h := handler.NewHandler(source, "warn.eml")
	got, err := ParseString(source, ParseOptionWithHandler(h))
	assert.NoError(t, err)
	assert.False(t, h.HasErrors())

	warnings := h.Warnings()
	assert.Equal(t, 1, len(warnings))
	assert.Equal(t, 2, warnings[0].Location.Line)
	assert.Equal(t, 2, warnings[0].Location.Column)

	p := got[0].(*Element)
	assert.Equal(t, []Content{Text("&x; tea")}, p.Children)
}

func TestParseWithHandlerErrors(t *testing.T) {
	source := `<div class="x>`
	h := handler.NewHandler(source, "broken.eml")
	_, err := ParseString(source, ParseOptionWithHandler(h))
	assert.Error(t, err)
	assert.True(t, h.HasErrors())
	assert.Equal(t, "broken.eml", h.Errors()[0].Location.File)
}

func TestParseLeftoverDiagnostic(t *testing.T) {
	source := `<div>x</div></span>`
	h := handler.NewHandler(source, "leftover.eml")
	_, err := ParseString(source, ParseOptionWithHandler(h))
	assert.Error(t, err)
	assert.True(t, h.HasErrors())
}

func fixturesParse() []string {
	return []string{
		`<div id="a">x</div>`,
		`<br>`,
		`<div>#param{greeting}</div>`,
		`<a href="/x/#param{id}">y</a>`,
		`<script>if (a < b) { }</script>`,
		`<pre>  x  </pre>`,
		`<!DOCTYPE html><p>&amp;</p>`,
		`<div class="x>`,
		`</div>`,
		`&unknown;`,
	}
}

func FuzzParse(f *testing.F) {
	for _, source := range fixturesParse() {
		f.Add(source)
	}
	f.Fuzz(func(t *testing.T, source string) {
		// either error shape is acceptable, panics are not
		_, _ = ParseString(source)
	})
}
