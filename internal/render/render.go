// Package render formats derived statements for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/cycles"
	"github.com/fecscope/fecscope/internal/model"
)

const amountWidth = 16

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	totalStyle = lipgloss.NewStyle().
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func amount(d decimal.Decimal) string {
	return fmt.Sprintf("%*s", amountWidth, d.StringFixed(2))
}

func line(sb *strings.Builder, label string, d decimal.Decimal) {
	fmt.Fprintf(sb, "  %-48s%s\n", label, amount(d))
}

func validation(sb *strings.Builder, v model.Validation, subject string) {
	if v.Valid {
		fmt.Fprintln(sb, okStyle.Render(fmt.Sprintf("  [équilibré] écart %s", v.Gap.StringFixed(2))))
	} else {
		fmt.Fprintln(sb, warnStyle.Render(fmt.Sprintf("  [%s non équilibré] écart %s", subject, v.Gap.StringFixed(2))))
	}
	for _, w := range v.Warnings {
		fmt.Fprintln(sb, warnStyle.Render("  ! "+w))
	}
}

// BalanceSheet renders the two-sided statement of position.
func BalanceSheet(bs *model.BalanceSheet) string {
	if bs == nil {
		return dimStyle.Render("Aucune donnée de bilan.") + "\n"
	}
	var sb strings.Builder
	fmt.Fprintln(&sb, titleStyle.Render("BILAN"))

	fmt.Fprintln(&sb, sectionStyle.Render("ACTIF"))
	for _, s := range bs.Assets {
		renderSection(&sb, s)
	}
	fmt.Fprintln(&sb, totalStyle.Render(fmt.Sprintf("  %-48s%s", "Total actif", amount(bs.TotalAssets))))
	fmt.Fprintln(&sb)

	fmt.Fprintln(&sb, sectionStyle.Render("PASSIF"))
	for _, s := range bs.Liabilities {
		renderSection(&sb, s)
	}
	fmt.Fprintln(&sb, totalStyle.Render(fmt.Sprintf("  %-48s%s", "Total passif", amount(bs.TotalLiabilities))))
	fmt.Fprintln(&sb)

	validation(&sb, bs.Validation, "bilan")
	return sb.String()
}

func renderSection(sb *strings.Builder, s model.Section) {
	if len(s.Items) == 0 {
		return
	}
	fmt.Fprintln(sb, dimStyle.Render("  "+s.Label))
	for _, item := range s.Items {
		label := item.Label
		if !item.Contra.IsZero() {
			label = fmt.Sprintf("%s (brut %s, amort. %s)", item.Label, item.Gross.StringFixed(2), item.Contra.StringFixed(2))
		}
		line(sb, fmt.Sprintf("%-6s %s", item.Key, truncate(label, 40)), item.Net)
	}
	line(sb, "Sous-total "+s.Label, s.Total)
}

// IncomeStatement renders the four categories and the result cascade.
func IncomeStatement(is *model.IncomeStatement) string {
	if is == nil {
		return dimStyle.Render("Aucune donnée de compte de résultat.") + "\n"
	}
	var sb strings.Builder
	fmt.Fprintln(&sb, titleStyle.Render("COMPTE DE RÉSULTAT"))

	renderCategory(&sb, is.Operating)
	renderCategory(&sb, is.Financial)
	renderCategory(&sb, is.Extraordinary)

	if len(is.TaxAndProfitSharing) > 0 {
		fmt.Fprintln(&sb, sectionStyle.Render("Participation et impôts"))
		for _, item := range is.TaxAndProfitSharing {
			line(&sb, fmt.Sprintf("%-6s %s", item.Key, truncate(item.Label, 40)), item.Net)
		}
	}
	fmt.Fprintln(&sb)
	line(&sb, "Résultat d'exploitation", is.OperatingResult)
	line(&sb, "Résultat financier", is.FinancialResult)
	line(&sb, "Résultat courant avant impôts", is.CurrentResult)
	line(&sb, "Résultat exceptionnel", is.ExtraordinaryResult)
	fmt.Fprintln(&sb, totalStyle.Render(fmt.Sprintf("  %-48s%s", "Résultat net", amount(is.NetResult))))
	validation(&sb, is.Validation, "compte de résultat")
	return sb.String()
}

func renderCategory(sb *strings.Builder, cat model.IncomeCategory) {
	if len(cat.Expenses) == 0 && len(cat.Revenues) == 0 {
		return
	}
	fmt.Fprintln(sb, sectionStyle.Render(cat.Label))
	for _, item := range cat.Revenues {
		line(sb, fmt.Sprintf("%-6s %s", item.Key, truncate(item.Label, 40)), item.Net)
	}
	for _, item := range cat.Expenses {
		line(sb, fmt.Sprintf("%-6s %s", item.Key, truncate(item.Label, 40)), item.Net.Neg())
	}
}

// SIG renders the management-balances cascade.
func SIG(r *model.SIGResult) string {
	if r == nil {
		return dimStyle.Render("Aucune donnée de SIG.") + "\n"
	}
	var sb strings.Builder
	fmt.Fprintln(&sb, titleStyle.Render("SOLDES INTERMÉDIAIRES DE GESTION"))
	for _, l := range r.Lines {
		line(&sb, l.Label, l.Amount)
	}
	validation(&sb, r.Validation, "cascade SIG")
	return sb.String()
}

// CashFlow renders the indirect-method reconciliation.
func CashFlow(cf *model.CashFlowResult) string {
	var sb strings.Builder
	fmt.Fprintln(&sb, titleStyle.Render("TABLEAU DE FLUX DE TRÉSORERIE"))
	if cf == nil || !cf.Available {
		fmt.Fprintln(&sb, dimStyle.Render("  Indisponible : deux exercices sont nécessaires."))
		return sb.String()
	}
	line(&sb, "Capacité d'autofinancement", cf.CAF.Total)
	line(&sb, "Variation du BFR", cf.WorkingCapital.Total)
	line(&sb, "Flux d'investissement", cf.Investing.Total)
	line(&sb, "Flux de financement", cf.Financing.Total)
	fmt.Fprintln(&sb)
	line(&sb, "Variation nette calculée", cf.Summary.ComputedChange)
	line(&sb, "Variation de trésorerie constatée", cf.Summary.ObservedChange)
	validation(&sb, cf.Validation, "flux de trésorerie")
	return sb.String()
}

// Cycles renders the per-cycle audit statistics.
func Cycles(ca model.CycleAnalysis) string {
	var sb strings.Builder
	fmt.Fprintln(&sb, titleStyle.Render("CYCLES D'AUDIT"))
	fmt.Fprintf(&sb, "  %-18s %-24s %8s %16s %16s %9s\n",
		"Cycle", "Libellé", "Écritures", "Débit", "Crédit", "Comptes")
	for _, s := range cycles.Ordered(ca.Stats) {
		fmt.Fprintf(&sb, "  %-18s %-24s %9d %16s %16s %9d\n",
			s.Cycle, truncate(s.Label, 24), s.Count,
			s.TotalDebit.StringFixed(2), s.TotalCredit.StringFixed(2), s.DistinctAccounts)
	}
	return sb.String()
}

// Materiality renders the audit thresholds.
func Materiality(m model.MaterialityResult) string {
	var sb strings.Builder
	fmt.Fprintln(&sb, titleStyle.Render("SEUILS DE SIGNIFICATION"))
	line(&sb, fmt.Sprintf("Base de référence (%s, tranche %s)", m.BaseKind, m.Band), m.ReferenceBase)
	line(&sb, "Seuil de signification global (SSG)", m.SSG)
	line(&sb, "Seuil de remontée des anomalies", m.ReportingThreshold)
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
