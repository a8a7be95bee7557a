package htmlconv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/taskrunner/internal/htmlconv"
)

const page = `<!DOCTYPE html>
<html><head><title>  Example
 Domain </title><style>body{color:red}</style></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
<h1>Example Domain</h1>
<p>This domain is for use in <strong>examples</strong>.</p>
<script>alert("x")</script>
</main>
<footer>copyright</footer>
</body></html>`

func TestIsHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"doctype", "  <!DOCTYPE html><p>x</p>", true},
		{"html_tag", "<HTML><body></body></HTML>", true},
		{"many_tags", "<p>a</p><p>b</p><span>c</span>", true},
		{"two_structural", "<div><p>a</p></div>", true},
		{"plain_text", "just some text", false},
		{"one_inline_tag", "use <b> carefully", false},
		{"comparison", "a < b and c > d", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, htmlconv.IsHTML(tc.in))
		})
	}
}

func TestToMarkdown_MainContentOnly(t *testing.T) {
	md, err := htmlconv.ToMarkdown(page)
	require.NoError(t, err)

	assert.Contains(t, md, "# Example Domain")
	assert.Contains(t, md, "**examples**")
	assert.NotContains(t, md, "Home")
	assert.NotContains(t, md, "alert")
	assert.NotContains(t, md, "copyright")
	assert.NotContains(t, md, "\n\n\n")
}

func TestConvertIfHTML(t *testing.T) {
	out, converted := htmlconv.ConvertIfHTML("plain text body")
	assert.False(t, converted)
	assert.Equal(t, "plain text body", out)

	out, converted = htmlconv.ConvertIfHTML(page)
	assert.True(t, converted)
	assert.Contains(t, out, "Example Domain")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Example Domain", htmlconv.Title(page))
	assert.Equal(t, "", htmlconv.Title("no title here"))
}
