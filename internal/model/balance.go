package model

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountBalance is the cumulative debit/credit position of one account
// over a fiscal period. Built once per snapshot, never mutated.
type AccountBalance struct {
	AccountNum string          `json:"accountNum"`
	Label      string          `json:"label"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Balance    decimal.Decimal `json:"balance"` // Debit - Credit
}

// BalanceSet maps account numbers to their period balances. It represents
// one fiscal-period snapshot; builders treat it as read-only.
type BalanceSet map[string]AccountBalance

// Accounts returns all balances sorted by account number.
func (s BalanceSet) Accounts() []AccountBalance {
	out := make([]AccountBalance, 0, len(s))
	for _, b := range s {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNum < out[j].AccountNum })
	return out
}

// WithPrefix returns all balances whose account number starts with any of
// the given prefixes, sorted by account number.
func (s BalanceSet) WithPrefix(prefixes ...string) []AccountBalance {
	var out []AccountBalance
	for num, b := range s {
		for _, p := range prefixes {
			if strings.HasPrefix(num, p) {
				out = append(out, b)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNum < out[j].AccountNum })
	return out
}

// SumBalance totals the signed balances (debit - credit) of every account
// matching one of the prefixes.
func (s BalanceSet) SumBalance(prefixes ...string) decimal.Decimal {
	total := decimal.Zero
	for num, b := range s {
		for _, p := range prefixes {
			if strings.HasPrefix(num, p) {
				total = total.Add(b.Balance)
				break
			}
		}
	}
	return total
}
