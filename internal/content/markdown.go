package content

import (
	md "github.com/JohannesKaufmann/html-to-markdown"
)

// MarkdownConverter renders HTML note content as markdown, which reads far
// better than raw editor HTML when embedded in a model prompt.
type MarkdownConverter struct {
	converter *md.Converter
}

// NewMarkdownConverter creates a converter with default rules.
func NewMarkdownConverter() *MarkdownConverter {
	return &MarkdownConverter{
		converter: md.NewConverter("", true, nil),
	}
}

// Convert transforms HTML to markdown. On conversion failure the input is
// returned unchanged - a readable prompt is preferred over a hard error.
func (c *MarkdownConverter) Convert(html string) string {
	markdown, err := c.converter.ConvertString(html)
	if err != nil {
		return html
	}
	return markdown
}
