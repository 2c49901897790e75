// Package extract turns the raw HTML of a Material for MkDocs
// documentation page into a structured ApiDoc record. Extraction is
// best-effort: pages missing the expected structure degrade to empty
// fields, they never produce an error.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mdocs-mcp/internal/types"
)

// Selectors for the fixed page structure. The content container is the
// MkDocs Material content region; the doc-children block is emitted by
// mkdocstrings and holds the parameter table.
const (
	contentSelector     = ".md-content"
	docChildrenSelector = ".doc-children"
)

// Page extracts an ApiDoc from raw HTML. It is a pure function of its
// input: the same HTML always yields the same record. Unparseable
// input or a missing content container yields an empty record.
func Page(html string) *types.ApiDoc {
	result := types.NewApiDoc()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return result
	}

	content := doc.Find(contentSelector)

	result.Title = strings.TrimSpace(content.Find("h1").First().Text())
	result.Description = description(content)
	result.Parameters = parameters(content)
	result.Examples = examples(content)

	return result
}

// description joins every non-empty paragraph in the content region
// with a blank line between each.
func description(content *goquery.Selection) string {
	var paragraphs []string
	content.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

// parameters parses the table rows of the first doc-children block.
// Cell 0 is the name, cell 1 the description; an optional third cell
// marks the parameter required when it contains the literal substring
// "required". Rows with fewer than two cells are skipped.
func parameters(content *goquery.Selection) []types.Parameter {
	params := []types.Parameter{}
	content.Find(docChildrenSelector).First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		param := types.Parameter{
			Name:        strings.TrimSpace(cells.Eq(0).Text()),
			Description: strings.TrimSpace(cells.Eq(1).Text()),
		}
		if cells.Length() > 2 {
			param.Required = strings.Contains(cells.Eq(2).Text(), "required")
		}
		params = append(params, param)
	})
	return params
}

// examples collects every non-empty code block in document order.
func examples(content *goquery.Selection) []string {
	blocks := []string{}
	content.Find("pre code").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	return blocks
}
