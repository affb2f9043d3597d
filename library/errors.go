package library

import "errors"

var (
	ErrEmptyCode     = errors.New("empty book code")
	ErrUnknownCode   = errors.New("no book with this code")
	ErrAlreadyInCart = errors.New("book already in the loan cart")
	ErrNotInCart     = errors.New("book not in the loan cart")
	ErrEmptyCart     = errors.New("loan cart is empty, nothing to commit")
	ErrHistoryWrite  = errors.New("loan could not be written to the history")
)

// IsInfo reports whether err is a rule violation that should be shown to the
// user as information rather than as an error.
func IsInfo(err error) bool {
	return errors.Is(err, ErrAlreadyInCart) || errors.Is(err, ErrEmptyCart)
}
