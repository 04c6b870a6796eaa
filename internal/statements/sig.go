package statements

import (
	"github.com/fecscope/fecscope/internal/model"
)

// BuildSIG derives the ten soldes intermédiaires de gestion. Each step
// is a literal list of account-prefix groups with fixed signs: a change
// to the national chart of accounts changes these constants, not the
// algorithm. An empty snapshot yields nil.
func BuildSIG(set model.BalanceSet) *model.SIGResult {
	if len(set) == 0 {
		return nil
	}

	r := &model.SIGResult{}

	// 1. Chiffre d'affaires: class 70, rebates (709) included.
	r.Revenue = revenue(set, "70")

	// 2. Marge commerciale: goods sold less cost of goods sold
	// (purchases, their rebates, and the stock variation on goods).
	r.CommercialMargin = revenue(set, "707", "7097").
		Sub(expense(set, "607", "6087", "6097", "6037"))

	// 3. Production de l'exercice: sold, stocked and capitalized
	// production.
	r.Production = revenue(set, "70").
		Add(revenue(set, "71")).
		Add(revenue(set, "72"))

	// 4. Valeur ajoutée: production less third-party consumption.
	r.ValueAdded = r.Production.
		Sub(expense(set, "60")).
		Sub(expense(set, "61")).
		Sub(expense(set, "62"))

	// 5. Excédent brut d'exploitation.
	r.EBE = r.ValueAdded.
		Add(revenue(set, "74")).
		Sub(expense(set, "63")).
		Sub(expense(set, "64"))

	// 6. Résultat d'exploitation.
	r.OperatingResult = r.EBE.
		Add(revenue(set, "75", "781", "791")).
		Sub(expense(set, "65", "681"))

	// 7. Résultat courant avant impôts.
	r.CurrentResult = r.OperatingResult.
		Add(revenue(set, "76", "786", "796")).
		Sub(expense(set, "66", "686"))

	// 8. Résultat exceptionnel.
	r.ExtraordinaryResult = revenue(set, "77", "787", "797").
		Sub(expense(set, "67", "687"))

	// 9. Résultat sur cessions (informational, contained in 8).
	r.DisposalResult = revenue(set, "775").Sub(expense(set, "675"))

	// 10. Résultat net.
	r.NetResult = r.CurrentResult.
		Add(r.ExtraordinaryResult).
		Sub(expense(set, "69"))

	r.Lines = []model.SIGLine{
		{Key: "ca", Label: "Chiffre d'affaires", Amount: r.Revenue},
		{Key: "marge_commerciale", Label: "Marge commerciale", Amount: r.CommercialMargin},
		{Key: "production", Label: "Production de l'exercice", Amount: r.Production},
		{Key: "valeur_ajoutee", Label: "Valeur ajoutée", Amount: r.ValueAdded},
		{Key: "ebe", Label: "Excédent brut d'exploitation", Amount: r.EBE},
		{Key: "resultat_exploitation", Label: "Résultat d'exploitation", Amount: r.OperatingResult},
		{Key: "rcai", Label: "Résultat courant avant impôts", Amount: r.CurrentResult},
		{Key: "resultat_exceptionnel", Label: "Résultat exceptionnel", Amount: r.ExtraordinaryResult},
		{Key: "resultat_cessions", Label: "Résultat sur cessions d'actif", Amount: r.DisposalResult},
		{Key: "resultat_net", Label: "Résultat net", Amount: r.NetResult},
	}

	// The cascade must land on the raw class 6/7 net result.
	gap := r.NetResult.Sub(netResult(set)).Abs()
	r.Validation = model.Validation{
		Valid: gap.LessThanOrEqual(equilibriumTolerance),
		Gap:   gap,
	}
	return r
}
