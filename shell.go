package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-loans/library"
)

// shell is the interactive menu loop. It reads one answer per line.
type shell struct {
	sc    *bufio.Scanner
	out   io.Writer
	mgr   *library.LibraryManager
	width int
}

func newShell(in io.Reader, out io.Writer, mgr *library.LibraryManager, width int) *shell {
	return &shell{sc: bufio.NewScanner(in), out: out, mgr: mgr, width: width}
}

func (s *shell) run() error {
	if s.mgr.Catalogue().Len() == 0 {
		fmt.Fprintln(s.out, "[WARNING] The catalogue is empty or could not be loaded.")
		fmt.Fprintln(s.out, "The program still runs, but there is no book to borrow.")
	}

	for {
		s.printMainMenu()
		choice, ok := s.readChoice(1, 7)
		if !ok {
			fmt.Fprintln(s.out, "\nEnd of input. Goodbye!")
			return nil
		}

		switch choice {
		case 1:
			s.searchMenu()
		case 2:
			s.handleAdd()
		case 3:
			s.handleRemove()
		case 4:
			s.showCart()
		case 5:
			s.handleCommit()
		case 6:
			renderHistory(s.out, s.mgr.LoanHistory(), s.width)
		case 7:
			fmt.Fprintln(s.out, "Closing the library. Thanks for visiting!")
			return nil
		}
	}
}

func (s *shell) printMainMenu() {
	fmt.Fprintln(s.out, "\n===== MAIN MENU - LIBRARY =====")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "1. Search the catalogue")
	fmt.Fprintln(s.out, "2. Add a book to the loan cart")
	fmt.Fprintln(s.out, "3. Remove a book from the loan cart")
	fmt.Fprintln(s.out, "4. Show the loan cart")
	fmt.Fprintln(s.out, "5. Commit the loan")
	fmt.Fprintln(s.out, "6. Show the loan history")
	fmt.Fprintln(s.out, "7. Quit")
	fmt.Fprintln(s.out, "\n===============================")
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.sc.Scan() {
		return "", false
	}
	return s.sc.Text(), true
}

// readChoice asks until it gets a number in [min, max]. It reports false at
// end of input.
func (s *shell) readChoice(min, max int) (int, bool) {
	for {
		input, ok := s.prompt("Your choice: ")
		if !ok {
			return 0, false
		}
		n, err := parseChoice(input, min, max)
		if err != nil {
			fmt.Fprintf(s.out, "[ERROR] %v\n", err)
			continue
		}
		return n, true
	}
}

func parseChoice(input string, min, max int) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, errors.New("empty input, please enter a menu number")
	}
	if strings.IndexFunc(input, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, errors.New("please enter a valid menu number")
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("please enter a number between %d and %d", min, max)
	}
	return n, nil
}

func (s *shell) report(err error) {
	if library.IsInfo(err) {
		fmt.Fprintf(s.out, "[INFO] %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "[ERROR] %v\n", err)
}

func (s *shell) searchMenu() {
	fmt.Fprintln(s.out, "\n--- Search books ---")
	fmt.Fprintln(s.out, "1. By code")
	fmt.Fprintln(s.out, "2. By title (partial)")
	fmt.Fprintln(s.out, "3. By category")
	fmt.Fprintln(s.out, "4. Back to the main menu")

	choice, ok := s.readChoice(1, 4)
	if !ok {
		return
	}

	switch choice {
	case 1:
		code, ok := s.prompt("Book code: ")
		if !ok {
			return
		}
		if b, found := s.mgr.FindByCode(code); found {
			library.RenderBooks(s.out, []library.Book{b}, "\nResult:", s.width)
		} else {
			fmt.Fprintln(s.out, "[INFO] No book found with this code.")
		}
	case 2:
		fragment, ok := s.prompt("Part of the title: ")
		if !ok {
			return
		}
		s.showResults(s.mgr.FindByTitle(fragment), "[INFO] No book matches this title.")
	case 3:
		category, ok := s.prompt("Category: ")
		if !ok {
			return
		}
		s.showResults(s.mgr.FindByCategory(category), "[INFO] No book found in this category.")
	}
}

func (s *shell) showResults(books []library.Book, none string) {
	if len(books) == 0 {
		fmt.Fprintln(s.out, none)
		return
	}
	library.RenderBooks(s.out, books, fmt.Sprintf("\n%d book(s) found:", len(books)), s.width)
}

func (s *shell) handleAdd() {
	code, ok := s.prompt("Code of the book to add: ")
	if !ok {
		return
	}
	b, err := s.mgr.AddToCart(code)
	if err != nil {
		s.report(err)
		return
	}
	fmt.Fprintf(s.out, "[OK] Book added to the loan cart: %s\n", b.Title)
}

func (s *shell) handleRemove() {
	code, ok := s.prompt("Code of the book to remove: ")
	if !ok {
		return
	}
	b, err := s.mgr.RemoveFromCart(code)
	if err != nil {
		s.report(err)
		return
	}
	fmt.Fprintf(s.out, "[OK] Book removed from the loan cart: %s\n", b.Title)
}

func (s *shell) showCart() {
	items := s.mgr.CartItems()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "\nYour loan cart is empty.")
		return
	}
	fmt.Fprintf(s.out, "\nBooks in the loan cart: %d\n", len(items))
	library.RenderBooks(s.out, items, "\n--- Current loan cart ---", s.width)
}

func (s *shell) handleCommit() {
	codes, err := s.mgr.CommitCart()
	switch {
	case errors.Is(err, library.ErrEmptyCart):
		s.report(err)
	case err != nil:
		// The loan counts as committed even when the log could not be written.
		s.report(err)
		fmt.Fprintf(s.out, "[OK] Loan of %d book(s) committed. The loan cart has been reset.\n", len(codes))
	default:
		fmt.Fprintf(s.out, "[OK] Loan of %d book(s) committed and saved. The loan cart has been reset.\n", len(codes))
	}
}

// renderHistory prints every loan with the books still known to the
// catalogue and the codes that are not.
func renderHistory(w io.Writer, loans []library.ResolvedLoan, width int) {
	if len(loans) == 0 {
		fmt.Fprintln(w, "\nNo loan recorded yet.")
		return
	}

	fmt.Fprintln(w, "\n===== LOAN HISTORY =====")
	for i, loan := range loans {
		fmt.Fprintf(w, "\n--- Loan #%d ---\n", i+1)
		fmt.Fprintf(w, "Date: %s\n", loan.Timestamp)

		if len(loan.Codes) == 0 {
			fmt.Fprintln(w, "No book recorded for this loan.")
			continue
		}
		if len(loan.Books) > 0 {
			library.RenderBooks(w, loan.Books, "Borrowed books:", width)
		} else {
			fmt.Fprintln(w, "None of the books of this loan is in the current catalogue.")
		}
		if len(loan.Unknown) > 0 {
			fmt.Fprintln(w, "\nCodes not found in the current catalogue:")
			for _, c := range loan.Unknown {
				fmt.Fprintf(w, " - %s\n", c)
			}
		}
	}
	fmt.Fprintln(w, "\n========================")
}
