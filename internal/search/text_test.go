package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"tags removed", `<h1 class="x">Engine</h1><p>Check <strong>oil</strong> level.</p>`, "Engine Check oil level."},
		{"entities decoded", `<p>Nuts &amp; bolts &lt;M10&gt;</p>`, "Nuts & bolts <M10>"},
		{"whitespace collapsed", "<p>\n   one\n\n   two   </p>", "one two"},
		{"table cells separated", `<table><tr><td>ATR</td><td>Annual</td></tr></table>`, "ATR Annual"},
		{"script dropped", `<p>visible</p><script>hidden()</script><style>.a{}</style>`, "visible"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlainText(tc.in))
		})
	}
}

func TestPageLinks(t *testing.T) {
	src := `<p>See <a href="#" data-link-page-id="sm5000-3-1">pump</a> and
<button data-link-page-id="sm5000-4">wiring</button>, again <a data-link-page-id="sm5000-3-1">pump</a>.
<a href="https://example.com">external</a></p>`
	assert.Equal(t, []string{"sm5000-3-1", "sm5000-4", "sm5000-3-1"}, PageLinks(src))
	assert.Empty(t, PageLinks("<p>no links</p>"))
}
