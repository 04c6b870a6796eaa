package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one line of a FEC export. Immutable once parsed.
type LedgerEntry struct {
	JournalCode     string
	JournalLabel    string
	EntryNum        string
	EntryDate       time.Time
	AccountNum      string // PCG account number, variable length
	AccountLabel    string
	SubAccountNum   string // sub-ledger account for collective accounts, may be empty
	SubAccountLabel string
	PieceRef        string
	PieceDate       time.Time
	EntryLabel      string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	Lettering       string
	ValidDate       time.Time
}

// Class returns the leading PCG class digit of the account number,
// or -1 when the account number does not start with a digit.
func (e LedgerEntry) Class() int {
	return AccountClass(e.AccountNum)
}

// AccountClass returns the leading PCG class digit of an account number,
// or -1 when the number is empty or does not start with a digit.
func AccountClass(accountNum string) int {
	if accountNum == "" {
		return -1
	}
	c := accountNum[0]
	if c < '0' || c > '9' {
		return -1
	}
	return int(c - '0')
}
