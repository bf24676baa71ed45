package eml

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestPrintToSourceRoundTrip(t *testing.T) {
	sources := []string{
		`<div id="a">x</div>`,
		`<br>`,
		`<input disabled>`,
		`<div class="a b">x</div>`,
		`<a href="/x/#param{id}">y</a>`,
		`<div>#param{greeting}</div>`,
		`<script>if (a < b) { }</script>`,
		`<div><![CDATA[  x  ]]></div>`,
		`<p>a<br>b</p>`,
	}
	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			content, err := ParseString(source)
			assert.NilError(t, err)
			var buf strings.Builder
			PrintToSource(&buf, content...)
			assert.Equal(t, source, buf.String())
		})
	}
}

func TestPrintToSourceEscapes(t *testing.T) {
	content, err := ParseString(`<p>a &amp; b</p>`)
	assert.NilError(t, err)
	var buf strings.Builder
	PrintToSource(&buf, content...)
	assert.Equal(t, `<p>a &amp; b</p>`, buf.String())
}
