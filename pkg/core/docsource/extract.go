package docsource

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

// FlattenBody linearizes a Google Docs structural-element tree into plain
// text: paragraph runs concatenated in order, table cells flattened
// recursively and joined with " | ", rows terminated by a newline. Lossy but
// readable; formatting, links and comments are dropped on purpose.
func FlattenBody(elements []*docs.StructuralElement) string {
	var b strings.Builder
	flattenInto(&b, elements)
	return b.String()
}

func flattenInto(b *strings.Builder, elements []*docs.StructuralElement) {
	for _, el := range elements {
		if el == nil {
			continue
		}
		if el.Paragraph != nil {
			for _, pe := range el.Paragraph.Elements {
				if pe != nil && pe.TextRun != nil {
					b.WriteString(pe.TextRun.Content)
				}
			}
		}
		if el.Table != nil {
			for _, row := range el.Table.TableRows {
				if row == nil {
					continue
				}
				cells := make([]string, 0, len(row.TableCells))
				for _, cell := range row.TableCells {
					if cell == nil {
						continue
					}
					cells = append(cells, strings.TrimSpace(FlattenBody(cell.Content)))
				}
				b.WriteString(strings.Join(cells, " | "))
				b.WriteString("\n")
			}
		}
	}
}
