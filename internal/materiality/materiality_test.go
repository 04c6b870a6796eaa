package materiality

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_Bands(t *testing.T) {
	cases := []struct {
		revenue string
		ssg     string
		band    string
	}{
		{"400000", "20000", "≤ 500 K€"},
		{"500000", "25000", "≤ 500 K€"},
		{"1000000", "30000", "≤ 2 M€"},
		{"8000000", "160000", "≤ 10 M€"},
		{"30000000", "450000", "≤ 50 M€"},
		{"80000000", "800000", "> 50 M€"},
	}
	for _, tc := range cases {
		r := Compute(dec(tc.revenue), decimal.Zero)
		assert.True(t, r.SSG.Equal(dec(tc.ssg)), "CA %s: SSG = %s", tc.revenue, r.SSG)
		assert.Equal(t, tc.band, r.Band, "CA %s", tc.revenue)
		assert.Equal(t, "revenue", r.BaseKind)
	}
}

func TestCompute_ReportingThreshold(t *testing.T) {
	r := Compute(dec("1000000"), decimal.Zero)
	assert.True(t, r.SSG.Equal(dec("30000")))
	assert.True(t, r.ReportingThreshold.Equal(dec("3000")))
}

func TestCompute_FallsBackToBalanceSheetTotal(t *testing.T) {
	r := Compute(decimal.Zero, dec("600000"))
	assert.Equal(t, "balance_sheet_total", r.BaseKind)
	assert.True(t, r.ReferenceBase.Equal(dec("600000")))
	assert.True(t, r.SSG.Equal(dec("18000")))

	r = Compute(dec("-50000"), dec("400000"))
	assert.Equal(t, "balance_sheet_total", r.BaseKind)
	assert.True(t, r.SSG.Equal(dec("20000")))
}

func TestCompute_NegativeBaseClampedToZero(t *testing.T) {
	r := Compute(decimal.Zero, dec("-100"))
	assert.True(t, r.ReferenceBase.IsZero())
	assert.True(t, r.SSG.IsZero())
	assert.True(t, r.ReportingThreshold.IsZero())
}
