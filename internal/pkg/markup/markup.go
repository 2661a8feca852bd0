// Package markup renders Markdown for comments and posts.
package markup

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	commentMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	postMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	commentPolicy = newCommentPolicy()
	textPolicy    = bluemonday.StrictPolicy()

	whitespace  = regexp.MustCompile(`\s+`)
	relativeSrc = regexp.MustCompile(`(src|href)="/([^/"][^"]*)"`)
)

func newCommentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Comment renders untrusted Markdown to sanitized HTML.
func Comment(source string) (string, error) {
	var buf bytes.Buffer
	if err := commentMarkdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(commentPolicy.Sanitize(buf.String())), nil
}

// Post renders trusted post Markdown. Raw HTML in the source is kept.
func Post(source string) (string, error) {
	var buf bytes.Buffer
	if err := postMarkdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText strips all markup and collapses whitespace.
func PlainText(s string) string {
	text := html.UnescapeString(textPolicy.Sanitize(s))
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// AbsoluteURLs rewrites root-relative src and href attributes against base.
func AbsoluteURLs(s, base string) string {
	base = strings.TrimRight(base, "/")
	return relativeSrc.ReplaceAllString(s, `$1="`+base+`/$2"`)
}
