// Package fec reads the French statutory accounting export format
// (Fichier des Écritures Comptables): tab-delimited UTF-8 text with a
// header row and at least 18 columns per the DGFiP specification.
package fec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
)

const (
	numFields  = 18
	dateFormat = "20060102"

	colJournalCode  = 0
	colJournalLib   = 1
	colEntryNum     = 2
	colEntryDate    = 3
	colAccountNum   = 4
	colAccountLib   = 5
	colSubAccount   = 6
	colSubAccountLb = 7
	colPieceRef     = 8
	colPieceDate    = 9
	colEntryLib     = 10
	colDebit        = 11
	colCredit       = 12
	colLettering    = 13
	colDateLet      = 14
	colValidDate    = 15
)

// ErrEmpty is returned when the input contains no ledger rows.
var ErrEmpty = errors.New("fec: empty file")

// Read parses a FEC stream into ledger entries. Structural problems (too
// few columns, bad dates, unparseable amounts) fail fast with the row
// number; they are never papered over.
func Read(r io.Reader) ([]model.LedgerEntry, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1 // checked per row, trailing columns tolerated
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading FEC: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	rows := records
	if isHeader(records[0]) {
		rows = records[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	entries := make([]model.LedgerEntry, 0, len(rows))
	for i, rec := range rows {
		entry, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadFile parses a FEC file from disk.
func ReadFile(path string) ([]model.LedgerEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening FEC %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing FEC %s: %w", path, err)
	}
	return entries, nil
}

// Summary reports aggregate totals for a parsed ledger.
type Summary struct {
	Entries     int
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Summarize computes entry count and aggregate debit/credit totals.
func Summarize(entries []model.LedgerEntry) Summary {
	s := Summary{Entries: len(entries), TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, e := range entries {
		s.TotalDebit = s.TotalDebit.Add(e.Debit)
		s.TotalCredit = s.TotalCredit.Add(e.Credit)
	}
	return s
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	first := strings.TrimPrefix(rec[0], "\ufeff")
	return strings.EqualFold(first, "JournalCode")
}

func unmarshalRow(rec []string) (model.LedgerEntry, error) {
	if len(rec) < numFields {
		return model.LedgerEntry{}, fmt.Errorf("expected at least %d fields, got %d", numFields, len(rec))
	}

	entryDate, err := time.Parse(dateFormat, rec[colEntryDate])
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing entry date %q: %w", rec[colEntryDate], err)
	}

	debit, err := parseAmount(rec[colDebit])
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing debit %q: %w", rec[colDebit], err)
	}
	credit, err := parseAmount(rec[colCredit])
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing credit %q: %w", rec[colCredit], err)
	}

	// PieceDate and ValidDate are frequently blank in real exports.
	pieceDate, _ := time.Parse(dateFormat, rec[colPieceDate])
	validDate, _ := time.Parse(dateFormat, rec[colValidDate])

	return model.LedgerEntry{
		JournalCode:     strings.TrimSpace(rec[colJournalCode]),
		JournalLabel:    rec[colJournalLib],
		EntryNum:        rec[colEntryNum],
		EntryDate:       entryDate,
		AccountNum:      strings.TrimSpace(rec[colAccountNum]),
		AccountLabel:    rec[colAccountLib],
		SubAccountNum:   strings.TrimSpace(rec[colSubAccount]),
		SubAccountLabel: rec[colSubAccountLb],
		PieceRef:        rec[colPieceRef],
		PieceDate:       pieceDate,
		EntryLabel:      rec[colEntryLib],
		Debit:           debit,
		Credit:          credit,
		Lettering:       rec[colLettering],
		ValidDate:       validDate,
	}, nil
}

// parseAmount converts a FEC amount (decimal comma, possibly empty) to a
// decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	return decimal.NewFromString(s)
}
