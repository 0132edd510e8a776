package convert

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// NewConverter creates a reusable, goroutine-safe HTML to Markdown converter.
//
// The base plugin strips script, style, noscript and other non-content tags;
// the table plugin keeps table structure with minimal single-space cell
// padding (the compactor in internal/markdown normalizes the rest).
func NewConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// ToMarkdown converts an HTML fragment to Markdown.
func ToMarkdown(conv *converter.Converter, html string) (string, error) {
	md, err := conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to Markdown: %w", err)
	}
	return md, nil
}
