package library

import (
	"io"
	"log/slog"
)

// LibraryManager is a thin façade over the catalogue, the loan cart and the
// history store of one session, keeping CLI code simple.
type LibraryManager struct {
	cfg       Config
	logger    *slog.Logger
	catalogue *Catalogue
	loadDiags Diagnostics
	cart      *Cart
	history   *HistoryStore
}

// NewLibraryManager loads the catalogue named by cfg and starts an empty
// cart. Load problems are logged and kept for CatalogueDiagnostics.
func NewLibraryManager(cfg Config, logger *slog.Logger) *LibraryManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cat, diags := LoadCatalogue(cfg.CataloguePath)
	diags.Log(logger)
	logger.Info("catalogue loaded", "path", cfg.CataloguePath, "books", cat.Len())

	return &LibraryManager{
		cfg:       cfg,
		logger:    logger,
		catalogue: cat,
		loadDiags: diags,
		cart:      NewCart(),
		history:   NewHistoryStore(cfg.HistoryPath, logger),
	}
}

func (lm *LibraryManager) Config() Config                    { return lm.cfg }
func (lm *LibraryManager) Catalogue() *Catalogue             { return lm.catalogue }
func (lm *LibraryManager) CatalogueDiagnostics() Diagnostics { return lm.loadDiags }

// ------------------ Search ------------------

func (lm *LibraryManager) FindByCode(code string) (Book, bool) {
	return FindByCode(lm.catalogue, code)
}

func (lm *LibraryManager) FindByTitle(fragment string) []Book {
	return FindByTitle(lm.catalogue, fragment)
}

func (lm *LibraryManager) FindByCategory(category string) []Book {
	return FindByCategory(lm.catalogue, category)
}

// ------------------ Loan cart ------------------

func (lm *LibraryManager) AddToCart(code string) (Book, error) {
	b, err := lm.cart.Add(lm.catalogue, code)
	if err == nil {
		lm.logger.Debug("book added to cart", "code", b.Code)
	}
	return b, err
}

func (lm *LibraryManager) RemoveFromCart(code string) (Book, error) {
	b, err := lm.cart.Remove(code)
	if err == nil {
		lm.logger.Debug("book removed from cart", "code", b.Code)
	}
	return b, err
}

func (lm *LibraryManager) CartItems() []Book { return lm.cart.Items() }

// CommitCart writes the cart to the history log and empties it.
func (lm *LibraryManager) CommitCart() ([]string, error) {
	codes, err := lm.cart.Commit(lm.history)
	if len(codes) > 0 {
		lm.logger.Info("loan committed", "codes", codes, "saved", err == nil)
	}
	return codes, err
}

// ------------------ History ------------------

// LoadHistory reads every committed loan, logging read problems.
func (lm *LibraryManager) LoadHistory() []HistoryRecord {
	records, diags := lm.history.Load()
	diags.Log(lm.logger)
	return records
}

// LoanHistory returns the committed loans resolved against the catalogue.
func (lm *LibraryManager) LoanHistory() []ResolvedLoan {
	records := lm.LoadHistory()
	loans := make([]ResolvedLoan, 0, len(records))
	for _, rec := range records {
		loans = append(loans, ResolveLoan(lm.catalogue, rec))
	}
	return loans
}
