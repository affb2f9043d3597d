package library

import (
	"fmt"
	"slices"
	"strings"
)

// Book is one catalogue entry. Records are built once by the loader and are
// never modified afterwards; the catalogue hands out copies.
type Book struct {
	Code       string   `json:"code"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Rating     float64  `json:"rating"`
	Categories []string `json:"categories"`
}

// NewBook normalizes its arguments and rejects an empty code.
func NewBook(code, title, author string, rating float64, categories []string) (Book, error) {
	c := NormalizeCode(code)
	if c == "" {
		return Book{}, ErrEmptyCode
	}
	cats := make([]string, 0, len(categories))
	for _, raw := range categories {
		if cat := NormalizeTerm(raw); cat != "" {
			cats = append(cats, cat)
		}
	}
	return Book{
		Code:       c,
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		Rating:     rating,
		Categories: cats,
	}, nil
}

func (b Book) clone() Book {
	b.Categories = slices.Clone(b.Categories)
	return b
}

// HasCategory reports whether the book carries exactly the given (already
// normalized) category.
func (b Book) HasCategory(category string) bool {
	return slices.Contains(b.Categories, category)
}

// String formats a book on one line for log and CLI messages.
func (b Book) String() string {
	return fmt.Sprintf("%s %q by %s", b.Code, b.Title, b.Author)
}

// HistoryRecord is one committed loan read back from the history log.
// Timestamp is kept exactly as written.
type HistoryRecord struct {
	Timestamp string   `json:"timestamp"`
	Codes     []string `json:"codes"`
}

// ResolvedLoan is a history record matched against the current catalogue.
type ResolvedLoan struct {
	HistoryRecord
	Books   []Book   `json:"books"`
	Unknown []string `json:"unknown"`
}

// NormalizeCode trims and upper-cases a book code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeTerm trims and lower-cases a title fragment or category.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
