package export

import "strings"

// RenderText serializes a document as plain text, one section per staff
// member, tab-separated rows. Good enough for printing or pasting into a
// spreadsheet; richer renderers consume the Document model directly.
func RenderText(doc Document) string {
	var b strings.Builder

	b.WriteString(doc.Title)
	b.WriteString("\n")

	for _, section := range doc.Sections {
		b.WriteString("\n== ")
		b.WriteString(section.Title)
		b.WriteString(" ==\n")
		if section.Subtitle != "" {
			b.WriteString(section.Subtitle)
			b.WriteString("\n")
		}

		for _, table := range section.Tables {
			b.WriteString("\n")
			b.WriteString(table.Title)
			b.WriteString("\n")
			b.WriteString(strings.Join(table.Headers, "\t"))
			b.WriteString("\n")
			for _, row := range table.Rows {
				// Phone numbers are line-separated in the model; flatten
				// for the single-line text form.
				cells := make([]string, len(row))
				for i, cell := range row {
					cells[i] = strings.ReplaceAll(cell, "\n", ", ")
				}
				b.WriteString(strings.Join(cells, "\t"))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
