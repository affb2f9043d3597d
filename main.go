package main

import (
	"io"
	"log/slog"
	"os"

	"library-loans/library"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// options are the persistent flags shared by every command. Empty values
// leave the environment or the defaults in place.
type options struct {
	catalogue string
	history   string
	logLevel  string
	envFile   string
}

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "library",
		Short:        "Search the book catalogue, build a loan cart and review past loans",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := opts.manager(errOut)
			if err != nil {
				return err
			}
			return newShell(in, out, mgr, terminalWidth(out)).run()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.catalogue, "catalogue", "", "catalogue CSV file (env "+library.EnvCatalogue+", default "+library.DefaultCataloguePath+")")
	flags.StringVar(&opts.history, "history", "", "loan history file (env "+library.EnvHistory+", default "+library.DefaultHistoryPath+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (env "+library.EnvLogLevel+", default "+library.DefaultLogLevel+")")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file to read before the environment (default ./.env when present)")

	root.AddCommand(
		newSearchCommand(opts, out, errOut),
		newHistoryCommand(opts, out, errOut),
		newBorrowCommand(opts, out, errOut),
	)
	return root
}

func (o *options) config() (library.Config, error) {
	cfg, err := library.LoadConfig(o.envFile)
	if err != nil {
		return library.Config{}, err
	}
	if o.catalogue != "" {
		cfg.CataloguePath = o.catalogue
	}
	if o.history != "" {
		cfg.HistoryPath = o.history
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

func (o *options) manager(logOut io.Writer) (*library.LibraryManager, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})).
		With("session", uuid.NewString())
	return library.NewLibraryManager(cfg, logger), nil
}

// terminalWidth returns the column count of w when it is a terminal, 0
// otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
