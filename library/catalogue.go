package library

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Catalogue maps normalized codes to books. It iterates in the order codes
// were first seen; a later record with the same code replaces the earlier one
// in place.
type Catalogue struct {
	books map[string]Book
	order []string
}

// NewCatalogue builds a catalogue from books, applying the same
// last-write-wins rule as the loader.
func NewCatalogue(books ...Book) *Catalogue {
	c := &Catalogue{books: make(map[string]Book, len(books))}
	for _, b := range books {
		c.put(b)
	}
	return c
}

func (c *Catalogue) put(b Book) {
	if _, ok := c.books[b.Code]; !ok {
		c.order = append(c.order, b.Code)
	}
	c.books[b.Code] = b
}

// Len returns the number of distinct codes.
func (c *Catalogue) Len() int { return len(c.order) }

// Get looks up an already normalized code.
func (c *Catalogue) Get(code string) (Book, bool) {
	b, ok := c.books[code]
	if !ok {
		return Book{}, false
	}
	return b.clone(), true
}

// Books returns every book in iteration order.
func (c *Catalogue) Books() []Book {
	out := make([]Book, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.books[code].clone())
	}
	return out
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

const (
	colCode       = "code"
	colTitle      = "titre"
	colAuthor     = "auteur"
	colRating     = "note"
	colCategories = "categories"

	categorySeparator = ";"
)

// LoadCatalogue reads the delimited catalogue file at path. It never fails:
// every problem is reported in the returned Diagnostics and the catalogue
// holds whatever could be read.
func LoadCatalogue(path string) (*Catalogue, Diagnostics) {
	cat := NewCatalogue()
	var diags Diagnostics

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cat, append(diags, Diagnostic{Kind: KindMissingFile, Path: path, Message: "catalogue file does not exist"})
		}
		return cat, append(diags, Diagnostic{Kind: KindIOFailure, Path: path, Message: "cannot open catalogue", Err: err})
	}
	defer f.Close()

	counter := &undecodableCounter{r: f}
	diags = append(diags, readCatalogue(cat, newRecordReader(newLegacyReader(counter)), path)...)

	if counter.n > 0 {
		diags = append(diags, Diagnostic{
			Kind:    KindDecodeError,
			Path:    path,
			Message: fmt.Sprintf("%d undecodable byte(s) replaced", counter.n),
		})
	}
	return cat, diags
}

func readCatalogue(cat *Catalogue, r *recordReader, path string) Diagnostics {
	var diags Diagnostics
	header, line, err := r.Read()
	for errors.Is(err, errUnterminatedQuote) {
		diags = append(diags, malformedRow(path, line, err))
		header, line, err = r.Read()
	}
	if err == io.EOF {
		return diags
	}
	if err != nil {
		return append(diags, Diagnostic{Kind: KindIOFailure, Path: path, Message: "cannot read catalogue header", Err: err})
	}
	columns := headerIndex(header)

	for {
		record, line, err := r.Read()
		if err == io.EOF {
			return diags
		}
		if errors.Is(err, errUnterminatedQuote) {
			diags = append(diags, malformedRow(path, line, err))
			continue
		}
		if err != nil {
			return append(diags, Diagnostic{Kind: KindIOFailure, Path: path, Message: "catalogue read interrupted", Err: err})
		}

		get := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		book, err := NewBook(
			get(colCode),
			get(colTitle),
			get(colAuthor),
			parseRating(get(colRating)),
			strings.Split(get(colCategories), categorySeparator),
		)
		if err != nil {
			continue
		}
		cat.put(book)
	}
}

func malformedRow(path string, line int, err error) Diagnostic {
	return Diagnostic{Kind: KindMalformedRecord, Path: path, Line: line, Message: "malformed catalogue row skipped", Err: err}
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[NormalizeTerm(name)] = i
	}
	return idx
}

// parseRating returns 0 for empty, unparsable or non-finite input.
func parseRating(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
