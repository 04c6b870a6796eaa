package statements

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
	"github.com/fecscope/fecscope/internal/pcg"
)

type incomeCategory int

const (
	catOperating incomeCategory = iota
	catFinancial
	catExtraordinary
	catTax
)

// IncomeStatementBuilder classifies classes 6 and 7 into the four
// income-statement categories and reduces presentation to 2-digit
// granularity within each category.
type IncomeStatementBuilder struct {
	cls *pcg.Classifier
}

// NewIncomeStatementBuilder builds an income-statement builder.
func NewIncomeStatementBuilder(cls *pcg.Classifier) *IncomeStatementBuilder {
	return &IncomeStatementBuilder{cls: cls}
}

type incomeLineKey struct {
	cat    incomeCategory
	nature pcg.Nature
	key    string // 2-digit presentation key
}

// Build derives the income statement. An empty snapshot yields nil.
func (b *IncomeStatementBuilder) Build(set model.BalanceSet) *model.IncomeStatement {
	if len(set) == 0 {
		return nil
	}

	var warnings []string
	lines := make(map[incomeLineKey]*model.LineItem)

	for _, bal := range set.Accounts() {
		nature := b.cls.IncomeStatementSide(bal.AccountNum)
		if nature == pcg.NatureNone {
			continue
		}
		if bal.Balance.IsZero() {
			continue
		}

		cat, labelKey, ok := categorize(bal.AccountNum)
		if !ok {
			// Ventilated classes (68/78/79) need 3-digit resolution;
			// an unresolvable entry is excluded, not guessed.
			warnings = append(warnings, fmt.Sprintf(
				"compte %s non ventilé, exclu du compte de résultat (solde %s)",
				bal.AccountNum, bal.Balance.StringFixed(2)))
			continue
		}

		amount := bal.Balance
		if nature == pcg.NatureRevenue {
			amount = amount.Neg()
		}

		k := incomeLineKey{cat: cat, nature: nature, key: presentationKey(bal.AccountNum)}
		item, exists := lines[k]
		if !exists {
			item = &model.LineItem{Key: k.key, Label: b.cls.Label(labelKey), Gross: decimal.Zero}
			lines[k] = item
		}
		item.Gross = item.Gross.Add(amount)
		item.Net = item.Gross
	}

	is := &model.IncomeStatement{
		Operating:     model.IncomeCategory{Label: "Exploitation"},
		Financial:     model.IncomeCategory{Label: "Financier"},
		Extraordinary: model.IncomeCategory{Label: "Exceptionnel"},
		TotalTax:      decimal.Zero,
	}

	for k, item := range lines {
		switch k.cat {
		case catOperating:
			appendCategoryLine(&is.Operating, k.nature, *item)
		case catFinancial:
			appendCategoryLine(&is.Financial, k.nature, *item)
		case catExtraordinary:
			appendCategoryLine(&is.Extraordinary, k.nature, *item)
		case catTax:
			is.TaxAndProfitSharing = append(is.TaxAndProfitSharing, *item)
			is.TotalTax = is.TotalTax.Add(item.Net)
		}
	}
	sortCategory(&is.Operating)
	sortCategory(&is.Financial)
	sortCategory(&is.Extraordinary)
	sort.Slice(is.TaxAndProfitSharing, func(i, j int) bool {
		return is.TaxAndProfitSharing[i].Key < is.TaxAndProfitSharing[j].Key
	})

	is.Operating.Result = is.Operating.TotalRevenues.Sub(is.Operating.TotalExpenses)
	is.Financial.Result = is.Financial.TotalRevenues.Sub(is.Financial.TotalExpenses)
	is.Extraordinary.Result = is.Extraordinary.TotalRevenues.Sub(is.Extraordinary.TotalExpenses)

	is.OperatingResult = is.Operating.Result
	is.FinancialResult = is.Financial.Result
	is.CurrentResult = is.OperatingResult.Add(is.FinancialResult)
	is.ExtraordinaryResult = is.Extraordinary.Result
	is.NetResult = is.CurrentResult.Add(is.ExtraordinaryResult).Sub(is.TotalTax)

	// Revenue aggregate (chiffre d'affaires) for downstream materiality
	// and ratio calculations; 709 rebates reduce it naturally.
	is.Revenue = revenue(set, "70")

	// Articulation check: the cascade must reproduce the raw class 6/7
	// net result. Excluded unventilated accounts surface here as a gap.
	gap := is.NetResult.Sub(netResult(set)).Abs()
	is.Validation = model.Validation{
		Valid:    gap.LessThanOrEqual(equilibriumTolerance) && len(warnings) == 0,
		Gap:      gap,
		Warnings: warnings,
	}
	return is
}

// categorize maps an income-statement account to its category. The
// second return is the prefix used for the line label (3 digits for
// ventilated classes, 2 otherwise).
func categorize(account string) (incomeCategory, string, bool) {
	if len(account) < 2 {
		return 0, "", false
	}
	switch account[:2] {
	case "68", "78", "79":
		if len(account) < 3 {
			return 0, "", false
		}
		p3 := account[:3]
		switch p3 {
		case "681", "781", "791":
			return catOperating, p3, true
		case "686", "786", "796":
			return catFinancial, p3, true
		case "687", "787", "797":
			return catExtraordinary, p3, true
		}
		return 0, "", false
	case "66", "76":
		return catFinancial, account[:2], true
	case "67", "77":
		return catExtraordinary, account[:2], true
	case "69":
		return catTax, account[:2], true
	case "60", "61", "62", "63", "64", "65",
		"70", "71", "72", "73", "74", "75":
		return catOperating, account[:2], true
	}
	return 0, "", false
}

func appendCategoryLine(cat *model.IncomeCategory, nature pcg.Nature, item model.LineItem) {
	if nature == pcg.NatureExpense {
		cat.Expenses = append(cat.Expenses, item)
		cat.TotalExpenses = cat.TotalExpenses.Add(item.Net)
	} else {
		cat.Revenues = append(cat.Revenues, item)
		cat.TotalRevenues = cat.TotalRevenues.Add(item.Net)
	}
}

func sortCategory(cat *model.IncomeCategory) {
	sort.Slice(cat.Expenses, func(i, j int) bool { return cat.Expenses[i].Key < cat.Expenses[j].Key })
	sort.Slice(cat.Revenues, func(i, j int) bool { return cat.Revenues[i].Key < cat.Revenues[j].Key })
}
