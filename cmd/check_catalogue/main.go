package main

import (
	"fmt"
	"io"
	"os"

	"library-loans/library"

	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand(out io.Writer) *cobra.Command {
	var (
		envFile   string
		showBooks bool
	)

	cmd := &cobra.Command{
		Use:          "check_catalogue [path]",
		Short:        "Load a catalogue file and report what was imported",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := library.LoadConfig(envFile)
				if err != nil {
					return err
				}
				path = cfg.CataloguePath
			}
			return check(out, path, showBooks)
		},
	}
	cmd.SetOut(out)
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file used to find the default catalogue")
	cmd.Flags().BoolVar(&showBooks, "books", true, "print the imported books")
	return cmd
}

// check prints the load report and fails when the file could not be read.
func check(out io.Writer, path string, showBooks bool) error {
	fmt.Fprintf(out, "Loading catalogue %s...\n", path)
	cat, diags := library.LoadCatalogue(path)

	for _, d := range diags {
		fmt.Fprintf(out, "Warning: %s\n", d)
	}

	fmt.Fprintf(out, "\nLoad complete!\n")
	fmt.Fprintf(out, "Books imported: %d\n", cat.Len())
	fmt.Fprintf(out, "Diagnostics: %d\n", len(diags))

	if showBooks && cat.Len() > 0 {
		fmt.Fprintln(out)
		library.RenderBooks(out, cat.Books(), "Imported books:", 0)
	}

	if diags.Has(library.KindMissingFile) || diags.Has(library.KindIOFailure) {
		return fmt.Errorf("catalogue %s could not be read", path)
	}
	return nil
}
