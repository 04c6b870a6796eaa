package statements

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fecscope/fecscope/internal/model"
	"github.com/fecscope/fecscope/internal/pcg"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// bal builds an account balance from debit and credit totals.
func bal(account, label, debit, credit string) model.AccountBalance {
	d, c := dec(debit), dec(credit)
	return model.AccountBalance{
		AccountNum: account,
		Label:      label,
		Debit:      d,
		Credit:     c,
		Balance:    d.Sub(c),
	}
}

func setOf(balances ...model.AccountBalance) model.BalanceSet {
	set := make(model.BalanceSet, len(balances))
	for _, b := range balances {
		set[b.AccountNum] = b
	}
	return set
}

func testClassifier(t *testing.T) *pcg.Classifier {
	t.Helper()
	table, err := pcg.DefaultTable()
	require.NoError(t, err)
	return pcg.NewClassifier(table)
}
