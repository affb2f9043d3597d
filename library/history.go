package library

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// TimestampLayout is the format of the first field of a history line.
	TimestampLayout = "2006-01-02 15:04:05"

	recordSeparator = " | "
	codeSeparator   = ", "
)

// HistoryStore appends committed loans to a text log, one line per loan:
//
//	2025-12-08 14:35:12 | L01, L02, L15
type HistoryStore struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

// NewHistoryStore returns a store writing to path. A nil logger discards.
func NewHistoryStore(path string, logger *slog.Logger) *HistoryStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HistoryStore{path: path, now: time.Now, logger: logger}
}

// Path returns the log file location.
func (s *HistoryStore) Path() string { return s.path }

// Append writes one line for codes, in order. Nothing is written for an empty
// list. Failures are logged and returned; callers may ignore them.
func (s *HistoryStore) Append(codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	line := s.now().Format(TimestampLayout) + recordSeparator + strings.Join(codes, codeSeparator) + "\n"

	if err := s.appendLine(line); err != nil {
		s.logger.Error("cannot save loan", "path", s.path, "err", err)
		return err
	}
	s.logger.Debug("loan saved", "path", s.path, "codes", len(codes))
	return nil
}

func (s *HistoryStore) appendLine(line string) error {
	// Ensure directory exists so the first commit succeeds.
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	f, err := os.OpenFile(filepath.Clean(s.path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("write history: %w", err)
	}
	return f.Close()
}

// Load parses the whole log. A missing file is an empty history. Blank and
// malformed lines are skipped; an I/O failure stops the read and the records
// parsed so far are returned along with the diagnostic.
func (s *HistoryStore) Load() ([]HistoryRecord, Diagnostics) {
	records := []HistoryRecord{}

	f, err := os.Open(filepath.Clean(s.path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return records, nil
		}
		return records, Diagnostics{{Kind: KindIOFailure, Path: s.path, Message: "cannot open history", Err: err}}
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if rec, ok := ParseHistoryLine(line); ok {
				records = append(records, rec)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, Diagnostics{{Kind: KindIOFailure, Path: s.path, Message: "history read interrupted", Err: err}}
		}
	}
	return records, nil
}

// ParseHistoryLine decodes one log line. It reports false for blank lines and
// for lines that do not hold exactly one separator.
func ParseHistoryLine(line string) (HistoryRecord, bool) {
	line = strings.TrimSpace(strings.ToValidUTF8(line, "�"))
	if line == "" {
		return HistoryRecord{}, false
	}
	parts := strings.Split(line, recordSeparator)
	if len(parts) != 2 {
		return HistoryRecord{}, false
	}

	rec := HistoryRecord{Timestamp: strings.TrimSpace(parts[0]), Codes: []string{}}
	if list := strings.TrimSpace(parts[1]); list != "" {
		for _, c := range strings.Split(list, codeSeparator) {
			if code := NormalizeCode(c); code != "" {
				rec.Codes = append(rec.Codes, code)
			}
		}
	}
	return rec, true
}

// ResolveLoan splits the codes of rec into books still in the catalogue and
// codes it no longer knows, keeping the record's order.
func ResolveLoan(cat *Catalogue, rec HistoryRecord) ResolvedLoan {
	loan := ResolvedLoan{HistoryRecord: rec, Books: []Book{}, Unknown: []string{}}
	for _, code := range rec.Codes {
		if b, ok := cat.Get(code); ok {
			loan.Books = append(loan.Books, b)
		} else {
			loan.Unknown = append(loan.Unknown, code)
		}
	}
	return loan
}
