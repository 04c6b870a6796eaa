// Package cycles maps ledger entries to audit cycles and aggregates
// per-cycle statistics for audit-scope reporting.
package cycles

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
)

// Cycle codes.
const (
	CycleSales       = "VENTES"
	CyclePurchases   = "ACHATS"
	CycleTreasury    = "TRESORERIE"
	CycleFixedAssets = "IMMOBILISATIONS"
	CycleStock       = "STOCKS"
	CyclePayroll     = "PAIE"
	CycleTax         = "FISCAL"
	CycleFinancing   = "FINANCEMENT"
	CycleEquity      = "CAPITAUX"
	CycleClosing     = "CLOTURE"
	CycleMisc        = "OD"
)

var cycleLabels = map[string]string{
	CycleSales:       "Ventes - clients",
	CyclePurchases:   "Achats - fournisseurs",
	CycleTreasury:    "Trésorerie",
	CycleFixedAssets: "Immobilisations",
	CycleStock:       "Stocks",
	CyclePayroll:     "Personnel - paie",
	CycleTax:         "État - fiscalité",
	CycleFinancing:   "Financement",
	CycleEquity:      "Capitaux propres",
	CycleClosing:     "Écritures de clôture",
	CycleMisc:        "Opérations diverses",
}

// accountCycles maps account-number prefixes to cycles; the longest
// matching prefix wins.
var accountCycles = map[string]string{
	"10":  CycleEquity,
	"11":  CycleEquity,
	"12":  CycleEquity,
	"13":  CycleEquity,
	"14":  CycleEquity,
	"15":  CycleFinancing,
	"16":  CycleFinancing,
	"17":  CycleFinancing,
	"18":  CycleFinancing,
	"2":   CycleFixedAssets,
	"3":   CycleStock,
	"40":  CyclePurchases,
	"41":  CycleSales,
	"42":  CyclePayroll,
	"43":  CyclePayroll,
	"44":  CycleTax,
	"45":  CycleMisc,
	"46":  CycleMisc,
	"47":  CycleMisc,
	"48":  CycleClosing,
	"49":  CycleClosing,
	"5":   CycleTreasury,
	"60":  CyclePurchases,
	"603": CycleStock,
	"61":  CyclePurchases,
	"62":  CyclePurchases,
	"63":  CycleTax,
	"64":  CyclePayroll,
	"65":  CycleMisc,
	"66":  CycleFinancing,
	"67":  CycleMisc,
	"675": CycleFixedAssets,
	"68":  CycleClosing,
	"69":  CycleTax,
	"70":  CycleSales,
	"71":  CycleStock,
	"72":  CycleFixedAssets,
	"74":  CycleMisc,
	"75":  CycleMisc,
	"76":  CycleTreasury,
	"77":  CycleMisc,
	"775": CycleFixedAssets,
	"78":  CycleClosing,
	"79":  CycleClosing,
	"8":   CycleMisc,
}

// cyclePriorities resolves genuinely ambiguous 2-digit roots when no
// longer pattern matched: class-44 sub-accounts that could be read as
// payroll-related default to the tax cycle. Kept as a separate table so
// a rule change is a data change.
var cyclePriorities = map[string]string{
	"44": CycleTax,
}

// journalCycles is the fallback when no account prefix matches.
var journalCycles = map[string]string{
	"VE": CycleSales,
	"VT": CycleSales,
	"AC": CyclePurchases,
	"HA": CyclePurchases,
	"BQ": CycleTreasury,
	"BA": CycleTreasury,
	"CA": CycleTreasury,
	"TR": CycleTreasury,
	"PA": CyclePayroll,
	"SA": CyclePayroll,
	"AN": CycleClosing,
	"RA": CycleClosing,
	"OD": CycleMisc,
}

var maxAccountPatternLen = func() int {
	n := 0
	for p := range accountCycles {
		if len(p) > n {
			n = len(p)
		}
	}
	return n
}()

// ClassifyAccount returns the cycle for an account number, or "" when
// no pattern matches.
func ClassifyAccount(accountNum string) string {
	n := len(accountNum)
	if n > maxAccountPatternLen {
		n = maxAccountPatternLen
	}
	for k := n; k >= 1; k-- {
		if c, ok := accountCycles[accountNum[:k]]; ok {
			if k <= 2 {
				if p, prio := cyclePriorities[accountNum[:min(2, len(accountNum))]]; prio {
					return p
				}
			}
			return c
		}
	}
	return ""
}

// ClassifyEntry resolves an entry's cycle: account prefix first, then
// journal code, then the default miscellaneous cycle.
func ClassifyEntry(e model.LedgerEntry) string {
	if c := ClassifyAccount(e.AccountNum); c != "" {
		return c
	}
	code := strings.ToUpper(e.JournalCode)
	if c, ok := journalCycles[code]; ok {
		return c
	}
	if len(code) >= 2 {
		if c, ok := journalCycles[code[:2]]; ok {
			return c
		}
	}
	return CycleMisc
}

// Analyze tags every entry with its cycle and aggregates per-cycle
// statistics.
func Analyze(entries []model.LedgerEntry) model.CycleAnalysis {
	tags := make([]string, len(entries))
	stats := make(map[string]model.CycleStats)
	accounts := make(map[string]map[string]struct{})

	for i, e := range entries {
		cycle := ClassifyEntry(e)
		tags[i] = cycle

		s, ok := stats[cycle]
		if !ok {
			s = model.CycleStats{
				Cycle:       cycle,
				Label:       cycleLabels[cycle],
				TotalDebit:  decimal.Zero,
				TotalCredit: decimal.Zero,
				Balance:     decimal.Zero,
			}
			accounts[cycle] = make(map[string]struct{})
		}
		s.Count++
		s.TotalDebit = s.TotalDebit.Add(e.Debit)
		s.TotalCredit = s.TotalCredit.Add(e.Credit)
		s.Balance = s.TotalDebit.Sub(s.TotalCredit)
		if e.AccountNum != "" {
			accounts[cycle][e.AccountNum] = struct{}{}
		}
		s.DistinctAccounts = len(accounts[cycle])
		stats[cycle] = s
	}

	return model.CycleAnalysis{EntryCycles: tags, Stats: stats}
}

// Ordered returns the per-cycle stats sorted by cycle code.
func Ordered(stats map[string]model.CycleStats) []model.CycleStats {
	out := make([]model.CycleStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cycle < out[j].Cycle })
	return out
}
