// Package materiality computes audit-planning thresholds from a
// banded-percentage table over revenue or balance-sheet totals.
package materiality

import (
	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
)

// band is one row of the threshold table: reference bases up to Limit
// use Rate. A zero Limit marks the open-ended last band.
type band struct {
	Label string
	Limit decimal.Decimal
	Rate  decimal.Decimal
}

var bands = []band{
	{Label: "≤ 500 K€", Limit: decimal.NewFromInt(500_000), Rate: decimal.RequireFromString("0.05")},
	{Label: "≤ 2 M€", Limit: decimal.NewFromInt(2_000_000), Rate: decimal.RequireFromString("0.03")},
	{Label: "≤ 10 M€", Limit: decimal.NewFromInt(10_000_000), Rate: decimal.RequireFromString("0.02")},
	{Label: "≤ 50 M€", Limit: decimal.NewFromInt(50_000_000), Rate: decimal.RequireFromString("0.015")},
	{Label: "> 50 M€", Limit: decimal.Decimal{}, Rate: decimal.RequireFromString("0.01")},
}

// reportingRate sets the anomaly-reporting threshold as a share of the
// SSG.
var reportingRate = decimal.RequireFromString("0.10")

// Compute derives the seuil de signification global (SSG) and the
// anomaly-reporting threshold. The reference base is revenue when
// positive, else the balance-sheet total. Pure function of its inputs.
func Compute(revenue, balanceSheetTotal decimal.Decimal) model.MaterialityResult {
	base := revenue
	kind := "revenue"
	if !base.IsPositive() {
		base = balanceSheetTotal
		kind = "balance_sheet_total"
	}
	if base.IsNegative() {
		base = decimal.Zero
	}

	selected := bands[len(bands)-1]
	for _, b := range bands {
		if !b.Limit.IsZero() && base.LessThanOrEqual(b.Limit) {
			selected = b
			break
		}
	}

	ssg := base.Mul(selected.Rate).Round(2)
	return model.MaterialityResult{
		SSG:                ssg,
		ReportingThreshold: ssg.Mul(reportingRate).Round(2),
		ReferenceBase:      base,
		BaseKind:           kind,
		Band:               selected.Label,
	}
}
