// Package ledger folds raw FEC entries into per-account balances.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
)

// Aggregate folds ledger entries into one AccountBalance per distinct
// account number, in a single pass. Entries without an account number are
// skipped. The result is a fresh snapshot; re-running on the same input
// yields an identical set.
func Aggregate(entries []model.LedgerEntry) model.BalanceSet {
	set := make(model.BalanceSet)
	for _, e := range entries {
		if e.AccountNum == "" {
			continue
		}
		b, ok := set[e.AccountNum]
		if !ok {
			b = model.AccountBalance{
				AccountNum: e.AccountNum,
				Label:      e.AccountLabel,
				Debit:      decimal.Zero,
				Credit:     decimal.Zero,
				Balance:    decimal.Zero,
			}
		}
		if b.Label == "" {
			b.Label = e.AccountLabel
		}
		b.Debit = b.Debit.Add(e.Debit)
		b.Credit = b.Credit.Add(e.Credit)
		b.Balance = b.Debit.Sub(b.Credit)
		set[e.AccountNum] = b
	}
	return set
}
