package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fecscope/fecscope/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(journal, account, label, debit, credit string) model.LedgerEntry {
	return model.LedgerEntry{
		JournalCode:  journal,
		AccountNum:   account,
		AccountLabel: label,
		Debit:        dec(debit),
		Credit:       dec(credit),
	}
}

// fullPeriod books a 1000 sale with 200 VAT collected in full, and a
// 100 purchase with 20 VAT paid in full.
func fullPeriod() []model.LedgerEntry {
	return []model.LedgerEntry{
		entry("VE", "411000", "Clients", "1200.00", "0"),
		entry("VE", "707000", "Ventes de marchandises", "0", "1000.00"),
		entry("VE", "445710", "TVA collectée", "0", "200.00"),
		entry("BQ", "512000", "Banque", "1200.00", "0"),
		entry("BQ", "411000", "Clients", "0", "1200.00"),
		entry("AC", "606300", "Fournitures", "100.00", "0"),
		entry("AC", "445660", "TVA déductible", "20.00", "0"),
		entry("AC", "401000", "Fournisseurs", "0", "120.00"),
		entry("BQ", "401000", "Fournisseurs", "120.00", "0"),
		entry("BQ", "512000", "Banque", "0", "120.00"),
	}
}

func TestRun_EndToEnd(t *testing.T) {
	engine, err := NewDefaultEngine()
	require.NoError(t, err)

	res := engine.Run(fullPeriod(), nil)
	require.NotNil(t, res)

	assert.Equal(t, 10, res.Summary.Entries)
	assert.True(t, res.Summary.TotalDebit.Equal(res.Summary.TotalCredit))

	// Bank 1080 + deductible VAT 20 on the asset side; collected VAT 200
	// + 900 result on the liability side.
	bs := res.BalanceSheet
	require.NotNil(t, bs)
	assert.True(t, bs.Validation.Valid, "bilan non équilibré: écart %s", bs.Validation.Gap)
	assert.True(t, bs.TotalAssets.Equal(dec("1100.00")), "actif = %s", bs.TotalAssets)
	assert.True(t, bs.TotalLiabilities.Equal(dec("1100.00")))

	is := res.IncomeStatement
	require.NotNil(t, is)
	assert.True(t, is.NetResult.Equal(dec("900.00")))
	assert.True(t, is.Revenue.Equal(dec("1000.00")))
	assert.True(t, is.Validation.Valid)

	sig := res.SIG
	require.NotNil(t, sig)
	assert.True(t, sig.Production.Equal(dec("1000.00")))
	assert.True(t, sig.NetResult.Equal(dec("900.00")))
	assert.True(t, sig.Validation.Valid)

	require.Len(t, res.Cycles.EntryCycles, 10)
	assert.Equal(t, 3, res.Cycles.Stats["VENTES"].Count)
	assert.Equal(t, 3, res.Cycles.Stats["ACHATS"].Count)

	// Cash flow needs two periods.
	require.NotNil(t, res.CashFlow)
	assert.False(t, res.CashFlow.Available)

	// Materiality off the 1000 revenue: first band at 5%.
	assert.Equal(t, "revenue", res.Materiality.BaseKind)
	assert.True(t, res.Materiality.SSG.Equal(dec("50.00")))
}

func TestRun_WithPriorPeriod(t *testing.T) {
	engine, err := NewDefaultEngine()
	require.NoError(t, err)

	prior := []model.LedgerEntry{
		entry("AN", "101000", "Capital", "0", "10000.00"),
		entry("AN", "512000", "Banque", "10000.00", "0"),
	}
	current := []model.LedgerEntry{
		entry("AN", "101000", "Capital", "0", "13500.00"),
		entry("AN", "512000", "Banque", "13500.00", "0"),
	}

	res := engine.Run(current, prior)
	require.NotNil(t, res.CashFlow)
	require.True(t, res.CashFlow.Available)
	assert.True(t, res.CashFlow.Financing.CapitalChange.Equal(dec("3500.00")))
	assert.True(t, res.CashFlow.Validation.Valid)
}

func TestRun_EmptyLedger(t *testing.T) {
	engine, err := NewDefaultEngine()
	require.NoError(t, err)

	res := engine.Run(nil, nil)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Summary.Entries)
	assert.Nil(t, res.BalanceSheet)
	assert.Nil(t, res.IncomeStatement)
	assert.Nil(t, res.SIG)
	assert.False(t, res.CashFlow.Available)
	assert.Empty(t, res.Balances)
}

func TestResult_BalanceSet(t *testing.T) {
	engine, err := NewDefaultEngine()
	require.NoError(t, err)

	res := engine.Run(fullPeriod(), nil)
	set := res.BalanceSet()
	require.Len(t, set, 7)
	assert.True(t, set["512000"].Balance.Equal(dec("1080.00")))
}
