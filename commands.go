package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"library-loans/library"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSearchCommand(opts *options, out, errOut io.Writer) *cobra.Command {
	var asJSON bool

	search := &cobra.Command{
		Use:   "search",
		Short: "Query the catalogue by code, title or category",
	}
	search.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")

	query := func(use, short string, find func(*library.LibraryManager, string) []library.Book) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				mgr, err := opts.manager(errOut)
				if err != nil {
					return err
				}
				books := find(mgr, strings.Join(args, " "))
				if asJSON {
					return writeJSON(out, books)
				}
				if len(books) == 0 {
					fmt.Fprintln(out, "[INFO] No book found.")
					return nil
				}
				library.RenderBooks(out, books, fmt.Sprintf("%d book(s) found:", len(books)), terminalWidth(out))
				return nil
			},
		}
	}

	search.AddCommand(
		query("code <code>", "Exact, case-insensitive code lookup", func(m *library.LibraryManager, q string) []library.Book {
			if b, ok := m.FindByCode(q); ok {
				return []library.Book{b}
			}
			return []library.Book{}
		}),
		query("title <fragment>", "Case-insensitive title substring search", (*library.LibraryManager).FindByTitle),
		query("category <category>", "Exact category match", (*library.LibraryManager).FindByCategory),
	)
	return search
}

func newHistoryCommand(opts *options, out, errOut io.Writer) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the committed loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := opts.manager(errOut)
			if err != nil {
				return err
			}
			loans := mgr.LoanHistory()
			if asJSON {
				return writeJSON(out, loans)
			}
			renderHistory(out, loans, terminalWidth(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the history as JSON")
	return cmd
}

func newBorrowCommand(opts *options, out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "borrow <code>...",
		Short: "Commit one loan made of the given codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := opts.manager(errOut)
			if err != nil {
				return err
			}
			for _, code := range args {
				if _, err := mgr.AddToCart(code); err != nil {
					level := "ERROR"
					if library.IsInfo(err) {
						level = "INFO"
					}
					fmt.Fprintf(out, "[%s] %v\n", level, err)
				}
			}

			codes, err := mgr.CommitCart()
			if errors.Is(err, library.ErrEmptyCart) {
				return errors.New("no valid book code given, nothing borrowed")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "[OK] Loan committed: %s\n", strings.Join(codes, ", "))
			return nil
		},
	}
}
