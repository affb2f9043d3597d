package library

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var tableHeaders = [...]string{"Code", "Title", "Author", "Rating", "Categories"}

const columnSeparator = " | "

// RenderBooks prints books as an aligned table under an optional heading.
// When maxWidth is positive and the table would be wider, the Title column
// is shortened.
func RenderBooks(w io.Writer, books []Book, heading string, maxWidth int) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books to display.")
		return
	}

	rows := make([][len(tableHeaders)]string, len(books))
	var widths [len(tableHeaders)]int
	for i, h := range tableHeaders {
		widths[i] = utf8.RuneCountInString(h)
	}
	for i, b := range books {
		rows[i] = [...]string{b.Code, b.Title, b.Author, fmt.Sprintf("%.1f", b.Rating), strings.Join(b.Categories, ", ")}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], utf8.RuneCountInString(cell))
		}
	}

	total := len(columnSeparator) * (len(widths) - 1)
	for _, n := range widths {
		total += n
	}
	if maxWidth > 0 && total > maxWidth {
		shrunk := max(utf8.RuneCountInString(tableHeaders[1]), widths[1]-(total-maxWidth))
		total -= widths[1] - shrunk
		widths[1] = shrunk
	}

	if heading != "" {
		fmt.Fprintln(w, heading)
	}
	writeRow(w, tableHeaders, widths)
	fmt.Fprintln(w, strings.Repeat("-", total))
	for _, row := range rows {
		row[1] = TruncateString(row[1], widths[1])
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells [len(tableHeaders)]string, widths [len(tableHeaders)]int) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], c)
	}
	fmt.Fprintln(w, strings.Join(parts, columnSeparator))
}

// TruncateString shortens s to maxLength runes, marking the cut with "...".
func TruncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(r[:maxLength])
	}
	return string(r[:maxLength-3]) + "..."
}
