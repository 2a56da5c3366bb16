package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
	policy     = bluemonday.NewPolicy()
)

func init() {
	policy.AllowElements(
		"p", "br", "b", "strong", "i", "em", "code", "pre", "blockquote",
		"ul", "ol", "li", "h1", "h2", "h3", "hr", "span", "font", "div",
	)
	policy.AllowAttrs("color").Matching(bluemonday.Paragraph).OnElements("font")
	policy.AllowAttrs("class").OnElements("code", "span", "div")
}

// MarkdownToHTML renders markdown and strips anything outside the console's
// small HTML vocabulary.
func MarkdownToHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(policy.SanitizeBytes(unsafeHTML))
}

func SanitizeHTML(s string) string {
	return policy.Sanitize(s)
}

// HTMLToText flattens HTML for terminal output.
func HTMLToText(s string) (string, error) {
	text, err := html2text.FromString(s, html2text.Options{
		OmitLinks:    true,
		PrettyTables: true,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, "\n"), nil
}

func MarkdownToText(md []byte) (string, error) {
	return HTMLToText(MarkdownToHTML(md))
}
