package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentSanitizesScripts(t *testing.T) {
	out, err := Comment("**hi** <script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>hi</strong>")
	assert.NotContains(t, out, "<script")
}

func TestCommentLinksAreNofollow(t *testing.T) {
	out, err := Comment("[site](https://example.com)")
	require.NoError(t, err)

	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `nofollow`)
	assert.Contains(t, out, `target="_blank"`)
}

func TestPostKeepsRawHTML(t *testing.T) {
	out, err := Post("# Title\n\n<div class=\"note\">x</div>\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, `<div class="note">x</div>`)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "a & b c", PlainText("<p>a &amp; b</p>\n\n<p>c</p>"))
	assert.Equal(t, "", PlainText("   "))
}

func TestAbsoluteURLs(t *testing.T) {
	in := `<img src="/images/a.png"><a href="/blog/x/">x</a><img src="https://cdn/b.png"><a href="//cdn/c">c</a>`
	out := AbsoluteURLs(in, "https://site.test/")

	assert.Contains(t, out, `src="https://site.test/images/a.png"`)
	assert.Contains(t, out, `href="https://site.test/blog/x/"`)
	assert.Contains(t, out, `src="https://cdn/b.png"`)
	assert.Contains(t, out, `href="//cdn/c"`)
}
