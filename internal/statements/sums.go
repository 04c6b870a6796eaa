// Package statements derives the financial statements (balance sheet,
// income statement, SIG, cash flow) from one or two balance snapshots.
package statements

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
)

// tolerances and thresholds, in currency units.
var (
	zeroThreshold        = decimal.RequireFromString("0.01")
	equilibriumTolerance = decimal.RequireFromString("0.01")
	cashFlowTolerance    = decimal.RequireFromString("1.00")
)

func matchesAny(account string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(account, p) {
			return true
		}
	}
	return false
}

// sumSigned totals debit-credit balances over accounts matching any
// include prefix and no exclude prefix.
func sumSigned(set model.BalanceSet, include, exclude []string) decimal.Decimal {
	total := decimal.Zero
	for num, b := range set {
		if !matchesAny(num, include) {
			continue
		}
		if len(exclude) > 0 && matchesAny(num, exclude) {
			continue
		}
		total = total.Add(b.Balance)
	}
	return total
}

// expense totals class-6-style accounts at their natural sign
// (debit - credit).
func expense(set model.BalanceSet, prefixes ...string) decimal.Decimal {
	return sumSigned(set, prefixes, nil)
}

// revenue totals class-7-style accounts at their natural sign
// (credit - debit).
func revenue(set model.BalanceSet, prefixes ...string) decimal.Decimal {
	return sumSigned(set, prefixes, nil).Neg()
}

// netResult computes revenue minus expense over all income-statement
// accounts.
func netResult(set model.BalanceSet) decimal.Decimal {
	return revenue(set, "7").Sub(expense(set, "6"))
}

// treasury is the signed net treasury position: every class-5 account
// except the 59 depreciation contras. Credit-balance bank accounts
// (overdrafts, 519) reduce it naturally.
func treasury(set model.BalanceSet) decimal.Decimal {
	return sumSigned(set, []string{"5"}, []string{"59"})
}
