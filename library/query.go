package library

import "strings"

// FindByCode is a case-insensitive exact lookup.
func FindByCode(cat *Catalogue, code string) (Book, bool) {
	c := NormalizeCode(code)
	if c == "" || cat == nil {
		return Book{}, false
	}
	return cat.Get(c)
}

// FindByTitle returns the books whose title contains fragment, ignoring case.
// An empty fragment matches nothing.
func FindByTitle(cat *Catalogue, fragment string) []Book {
	f := NormalizeTerm(fragment)
	if f == "" || cat == nil {
		return []Book{}
	}
	return filter(cat, func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Title), f)
	})
}

// FindByCategory returns the books tagged with category. An empty category
// matches nothing.
func FindByCategory(cat *Catalogue, category string) []Book {
	c := NormalizeTerm(category)
	if c == "" || cat == nil {
		return []Book{}
	}
	return filter(cat, func(b Book) bool { return b.HasCategory(c) })
}

func filter(cat *Catalogue, keep func(Book) bool) []Book {
	results := []Book{}
	for _, b := range cat.Books() {
		if keep(b) {
			results = append(results, b)
		}
	}
	return results
}
