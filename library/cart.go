package library

import (
	"fmt"
	"slices"
)

// LoanRecorder persists the codes of a committed cart.
type LoanRecorder interface {
	Append(codes []string) error
}

// Cart holds the books staged for the next loan, in insertion order, with at
// most one entry per code.
type Cart struct {
	items []Book
}

func NewCart() *Cart { return &Cart{} }

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Items returns a copy of the staged books.
func (c *Cart) Items() []Book {
	out := make([]Book, len(c.items))
	for i, b := range c.items {
		out[i] = b.clone()
	}
	return out
}

// Codes returns the staged codes in cart order.
func (c *Cart) Codes() []string {
	codes := make([]string, len(c.items))
	for i, b := range c.items {
		codes[i] = b.Code
	}
	return codes
}

func (c *Cart) indexOf(code string) int {
	return slices.IndexFunc(c.items, func(b Book) bool { return b.Code == code })
}

// Add stages the catalogue book with the given code and returns it.
// ErrAlreadyInCart comes back together with the book already staged.
func (c *Cart) Add(cat *Catalogue, code string) (Book, error) {
	norm := NormalizeCode(code)
	if norm == "" {
		return Book{}, ErrEmptyCode
	}
	book, ok := cat.Get(norm)
	if !ok {
		return Book{}, fmt.Errorf("%w: %s", ErrUnknownCode, norm)
	}
	if c.indexOf(norm) >= 0 {
		return book, fmt.Errorf("%w: %s", ErrAlreadyInCart, book.Title)
	}
	c.items = append(c.items, book)
	return book, nil
}

// Remove drops the entry with the given code and returns it.
func (c *Cart) Remove(code string) (Book, error) {
	norm := NormalizeCode(code)
	if norm == "" {
		return Book{}, ErrEmptyCode
	}
	i := c.indexOf(norm)
	if i < 0 {
		return Book{}, fmt.Errorf("%w: %s", ErrNotInCart, norm)
	}
	book := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	return book, nil
}

// Commit hands the staged codes to rec and empties the cart. The cart is
// emptied even when rec fails; the failure is returned wrapped in
// ErrHistoryWrite along with the codes that were attempted.
func (c *Cart) Commit(rec LoanRecorder) ([]string, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	codes := c.Codes()
	err := rec.Append(codes)
	c.items = nil
	if err != nil {
		return codes, fmt.Errorf("%w: %w", ErrHistoryWrite, err)
	}
	return codes, nil
}
