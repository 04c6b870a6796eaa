package statements

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
	"github.com/fecscope/fecscope/internal/pcg"
)

// Section membership: fixed lists of 2-digit account prefixes. Class-1
// contras carried on the asset side (uncalled capital, accumulated
// losses) are presented with the fixed assets. The fixed-asset list
// spans 20-27 in full: the contra-target fallback can produce any
// class-2 root, and every produced line must land in a section.
var (
	assetFixedPrefixes   = []string{"10", "11", "12", "20", "21", "22", "23", "24", "25", "26", "27"}
	treasuryPrefixes     = []string{"50", "51", "52", "53", "54", "58", "59"}
	equityPrefixes       = []string{"10", "11", "12", "13", "14", "15"}
	longTermDebtPrefixes = []string{"16", "17", "18"}
)

// BalanceSheetBuilder aggregates a balance snapshot into the two-sided
// statement of position.
type BalanceSheetBuilder struct {
	cls      *pcg.Classifier
	resolver *DoublePositionResolver
}

// NewBalanceSheetBuilder builds a balance-sheet builder over a
// classifier.
func NewBalanceSheetBuilder(cls *pcg.Classifier) *BalanceSheetBuilder {
	return &BalanceSheetBuilder{cls: cls, resolver: NewDoublePositionResolver(cls)}
}

// Build derives the balance sheet. An empty snapshot yields nil ("no
// data", not an error). Equilibrium failure is reported on the
// validation record, never thrown: an unbalanced statement is a
// data-quality signal the caller decides how to treat.
func (b *BalanceSheetBuilder) Build(set model.BalanceSet) *model.BalanceSheet {
	if len(set) == 0 {
		return nil
	}

	var warnings []string
	assetItems := make(map[string]*model.LineItem)
	liabilityItems := make(map[string]*model.LineItem)
	contraByTarget := make(map[string]decimal.Decimal)

	for _, bal := range set.Accounts() {
		if bal.Balance.Abs().LessThan(zeroThreshold) {
			continue
		}

		switch b.cls.Classify(bal.AccountNum) {
		case pcg.BucketIncomeStatement:
			continue // carried through the net-result line
		case pcg.BucketSpecial:
			continue
		case pcg.BucketUnclassified:
			warnings = append(warnings, fmt.Sprintf(
				"compte %s non classé (solde %s)", bal.AccountNum, bal.Balance.StringFixed(2)))
			continue
		}

		if model.AccountClass(bal.AccountNum) == 8 {
			// Engagement accounts are carried off-balance-sheet.
			continue
		}

		if pcg.IsContraAccount(bal.AccountNum) {
			target, _ := b.cls.ContraTarget(bal.AccountNum)
			cur, ok := contraByTarget[target]
			if !ok {
				cur = decimal.Zero
			}
			// Contra accounts carry credit balances; store as positive.
			contraByTarget[target] = cur.Add(bal.Balance.Neg())
			continue
		}

		if b.resolver.Covers(bal.AccountNum) {
			continue // resolved below, root by root
		}

		side := b.cls.BalanceSheetSide(bal.AccountNum)
		switch side {
		case pcg.SideAsset:
			addItem(assetItems, presentationKey(bal.AccountNum), b.cls.Label(presentationKey(bal.AccountNum)), bal.Balance)
		case pcg.SideLiability:
			addItem(liabilityItems, presentationKey(bal.AccountNum), b.cls.Label(presentationKey(bal.AccountNum)), bal.Balance.Neg())
		default:
			warnings = append(warnings, fmt.Sprintf(
				"compte %s sans position bilancielle (solde %s)", bal.AccountNum, bal.Balance.StringFixed(2)))
		}
	}

	for _, dp := range b.resolver.Resolve(set) {
		if dp.AssetAmount.GreaterThanOrEqual(zeroThreshold) {
			addItem(assetItems, dp.Root, dp.AssetLabel, dp.AssetAmount)
		}
		if dp.LiabilityAmount.GreaterThanOrEqual(zeroThreshold) {
			addItem(liabilityItems, dp.Root, dp.LiabilityLabel, dp.LiabilityAmount)
		}
	}

	// Net amortization/depreciation against the mapped gross asset item.
	for target, contra := range contraByTarget {
		item, ok := assetItems[target]
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"amortissements sur %s sans valeur brute correspondante", target))
			item = &model.LineItem{Key: target, Label: b.cls.Label(target), Gross: decimal.Zero}
			assetItems[target] = item
		}
		item.Contra = item.Contra.Add(contra)
		item.Net = item.Gross.Sub(item.Contra)
	}

	// The period result closes onto the liability side: a profit
	// increases equity, a loss decreases it.
	result := netResult(set)
	resultLabel := "Résultat de l'exercice (bénéfice)"
	if result.IsNegative() {
		resultLabel = "Résultat de l'exercice (perte)"
	}
	if !result.IsZero() {
		addItem(liabilityItems, "12", resultLabel, result)
	}

	bs := &model.BalanceSheet{
		Assets: []model.Section{
			makeSection("actif_immobilise", "Actif immobilisé", assetItems, assetFixedPrefixes),
			makeSection("actif_circulant", "Actif circulant", assetItems, currentPrefixes()),
			makeSection("tresorerie_actif", "Trésorerie", assetItems, treasuryPrefixes),
		},
		Liabilities: []model.Section{
			makeSection("capitaux_propres", "Capitaux propres", liabilityItems, equityPrefixes),
			makeSection("dettes_financieres", "Dettes financières", liabilityItems, longTermDebtPrefixes),
			makeSection("passif_circulant", "Passif circulant", liabilityItems, currentPrefixes()),
			makeSection("tresorerie_passif", "Trésorerie passive", liabilityItems, treasuryPrefixes),
		},
		NetResult: result,
	}

	for _, s := range bs.Assets {
		bs.TotalAssets = bs.TotalAssets.Add(s.Total)
	}
	for _, s := range bs.Liabilities {
		bs.TotalLiabilities = bs.TotalLiabilities.Add(s.Total)
	}

	gap := bs.TotalAssets.Sub(bs.TotalLiabilities).Abs()
	bs.Validation = model.Validation{
		Valid:    gap.LessThanOrEqual(equilibriumTolerance),
		Gap:      gap,
		Warnings: warnings,
	}
	return bs
}

func currentPrefixes() []string {
	return []string{"30", "31", "32", "33", "34", "35", "36", "37", "38", "39",
		"40", "41", "42", "43", "44", "45", "46", "47", "48", "49"}
}

// presentationKey reduces an account number to its 2-digit presentation
// granularity.
func presentationKey(account string) string {
	if len(account) <= 2 {
		return account
	}
	return account[:2]
}

func addItem(items map[string]*model.LineItem, key, label string, amount decimal.Decimal) {
	item, ok := items[key]
	if !ok {
		item = &model.LineItem{Key: key, Label: label, Gross: decimal.Zero, Contra: decimal.Zero}
		items[key] = item
	}
	item.Gross = item.Gross.Add(amount)
	item.Net = item.Gross.Sub(item.Contra)
}

// makeSection collects the items whose key starts with one of the
// prefixes, sorted by key, and totals their net amounts.
func makeSection(key, label string, items map[string]*model.LineItem, prefixes []string) model.Section {
	section := model.Section{Key: key, Label: label, Total: decimal.Zero}
	for k, item := range items {
		if matchesAny(k, prefixes) {
			section.Items = append(section.Items, *item)
		}
	}
	sort.Slice(section.Items, func(i, j int) bool {
		a, b := section.Items[i], section.Items[j]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Label < b.Label
	})
	for _, item := range section.Items {
		section.Total = section.Total.Add(item.Net)
	}
	return section
}
