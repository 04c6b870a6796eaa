package pcg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	table, err := DefaultTable()
	require.NoError(t, err)
	return NewClassifier(table)
}

func TestClassify_AllClasses(t *testing.T) {
	cls := defaultClassifier(t)

	cases := []struct {
		account string
		bucket  Bucket
	}{
		{"101000", BucketBalanceSheet},
		{"211000", BucketBalanceSheet},
		{"370000", BucketBalanceSheet},
		{"411000", BucketBalanceSheet},
		{"512000", BucketBalanceSheet},
		{"606300", BucketIncomeStatement},
		{"707000", BucketIncomeStatement},
		{"801000", BucketBalanceSheet},
		{"901000", BucketSpecial},
		{"012345", BucketUnclassified},
		{"XYZ", BucketUnclassified},
		{"", BucketUnclassified},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.bucket, cls.Classify(tc.account), "account %q", tc.account)
	}
}

func TestBalanceSheetSide(t *testing.T) {
	cls := defaultClassifier(t)

	// Class 1 defaults to liability, class 2-3 to asset.
	assert.Equal(t, SideLiability, cls.BalanceSheetSide("101000"))
	assert.Equal(t, SideAsset, cls.BalanceSheetSide("211000"))
	assert.Equal(t, SideAsset, cls.BalanceSheetSide("370000"))

	// Fixed positions override the class default.
	assert.Equal(t, SideAsset, cls.BalanceSheetSide("109000"))
	assert.Equal(t, SideAsset, cls.BalanceSheetSide("119000"))
	assert.Equal(t, SideAsset, cls.BalanceSheetSide("129000"))
	assert.Equal(t, SideAsset, cls.BalanceSheetSide("486000"))
	assert.Equal(t, SideLiability, cls.BalanceSheetSide("487000"))
	assert.Equal(t, SideLiability, cls.BalanceSheetSide("519000"))

	// Classes 4-5 without a fixed rule are sign-dependent.
	assert.Equal(t, SideNone, cls.BalanceSheetSide("411000"))
	assert.Equal(t, SideNone, cls.BalanceSheetSide("512000"))

	// Income accounts never get a side.
	assert.Equal(t, SideNone, cls.BalanceSheetSide("606300"))
}

func TestIncomeStatementSide(t *testing.T) {
	cls := defaultClassifier(t)

	assert.Equal(t, NatureExpense, cls.IncomeStatementSide("606300"))
	assert.Equal(t, NatureRevenue, cls.IncomeStatementSide("707000"))
	assert.Equal(t, NatureNone, cls.IncomeStatementSide("411000"))
}

func TestLabel_LongestPrefixWins(t *testing.T) {
	cls := defaultClassifier(t)

	assert.Equal(t, "TVA collectée", cls.Label("445710"))
	assert.Equal(t, "TVA déductible sur autres biens et services", cls.Label("445660"))
	assert.NotEqual(t, cls.Label("445660"), cls.Label("441000"))

	// Unknown account falls back to a generic label.
	assert.Equal(t, "Compte 999999", cls.Label("999999"))
}

func TestDoubleRoot(t *testing.T) {
	cls := defaultClassifier(t)

	dr, ok := cls.DoubleRoot("411000")
	require.True(t, ok)
	assert.Equal(t, "41", dr.Root)

	// The longest root wins: 4457 beats 44.
	dr, ok = cls.DoubleRoot("445710")
	require.True(t, ok)
	assert.Equal(t, "4457", dr.Root)

	dr, ok = cls.DoubleRoot("445660")
	require.True(t, ok)
	assert.Equal(t, "4456", dr.Root)

	// Fixed positions are excluded from double resolution.
	_, ok = cls.DoubleRoot("519000")
	assert.False(t, ok)
	_, ok = cls.DoubleRoot("486000")
	assert.False(t, ok)

	// Outside the configured roots.
	_, ok = cls.DoubleRoot("211000")
	assert.False(t, ok)
}

func TestContraTarget(t *testing.T) {
	cls := defaultClassifier(t)

	cases := []struct {
		account string
		target  string
	}{
		{"281000", "21"},
		{"280000", "20"},
		{"291000", "21"},
		{"391000", "31"},
		{"491000", "41"},
		{"590000", "50"},
		{"281540", "21"},
		{"284000", "24"}, // no explicit mapping, drop the second digit
	}
	for _, tc := range cases {
		target, ok := cls.ContraTarget(tc.account)
		require.True(t, ok, "account %q", tc.account)
		assert.Equal(t, tc.target, target, "account %q", tc.account)
	}

	_, ok := cls.ContraTarget("211000")
	assert.False(t, ok)
}

func TestPredicates(t *testing.T) {
	cls := defaultClassifier(t)

	assert.True(t, cls.IsVATAccount("445710"))
	assert.True(t, cls.IsVATAccount("445660"))
	assert.False(t, cls.IsVATAccount("441000"))

	assert.True(t, cls.IsAccrualAccount("486000"))
	assert.True(t, cls.IsAccrualAccount("487000"))
	assert.False(t, cls.IsAccrualAccount("488000"))
}

func TestNewRuleTable_Validation(t *testing.T) {
	_, err := NewRuleTable(RuleConfig{
		FixedPositions: []FixedPosition{{Pattern: "109", Side: "sideways"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid side")

	_, err = NewRuleTable(RuleConfig{
		DoublePositions: []DoubleRoot{{Root: "41"}, {Root: "41"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate pattern")

	_, err = NewRuleTable(RuleConfig{
		DoublePositions: []DoubleRoot{{Root: ""}},
	})
	require.Error(t, err)

	_, err = NewRuleTable(RuleConfig{
		FixedPositions: []FixedPosition{{Pattern: "601", Side: SideAsset}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "income statement")
}

func TestClassifier_ConcurrentUse(t *testing.T) {
	cls := defaultClassifier(t)
	accounts := []string{"101000", "411000", "606300", "707000", "512000"}

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				for _, a := range accounts {
					cls.Classify(a)
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	assert.Equal(t, BucketIncomeStatement, cls.Classify("606300"))
}
