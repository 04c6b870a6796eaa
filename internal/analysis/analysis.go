// Package analysis orchestrates the full derivation pipeline over a
// parsed ledger.
package analysis

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/cycles"
	"github.com/fecscope/fecscope/internal/fec"
	"github.com/fecscope/fecscope/internal/ledger"
	"github.com/fecscope/fecscope/internal/materiality"
	"github.com/fecscope/fecscope/internal/model"
	"github.com/fecscope/fecscope/internal/pcg"
	"github.com/fecscope/fecscope/internal/statements"
)

// Result bundles every derived output for one ledger (and optionally a
// prior-period ledger for the cash flow).
type Result struct {
	Summary         fec.Summary             `json:"summary"`
	Balances        []model.AccountBalance  `json:"balances"`
	BalanceSheet    *model.BalanceSheet     `json:"balanceSheet"`
	IncomeStatement *model.IncomeStatement  `json:"incomeStatement"`
	SIG             *model.SIGResult        `json:"sig"`
	CashFlow        *model.CashFlowResult   `json:"cashFlow"`
	Cycles          model.CycleAnalysis     `json:"cycles"`
	Materiality     model.MaterialityResult `json:"materiality"`

	set model.BalanceSet
}

// BalanceSet exposes the underlying snapshot, e.g. for a later period's
// cash-flow computation.
func (r *Result) BalanceSet() model.BalanceSet {
	return r.set
}

// Engine wires the classifier and statement builders. Safe for
// concurrent use: every stage is a pure fold over immutable snapshots.
type Engine struct {
	bsb *statements.BalanceSheetBuilder
	isb *statements.IncomeStatementBuilder
}

// NewEngine builds an engine over a validated rule table.
func NewEngine(table *pcg.RuleTable) *Engine {
	cls := pcg.NewClassifier(table)
	return &Engine{
		bsb: statements.NewBalanceSheetBuilder(cls),
		isb: statements.NewIncomeStatementBuilder(cls),
	}
}

// NewDefaultEngine builds an engine over the embedded rule table.
func NewDefaultEngine() (*Engine, error) {
	table, err := pcg.DefaultTable()
	if err != nil {
		return nil, err
	}
	return NewEngine(table), nil
}

// Run derives every statement from the entries. priorEntries may be nil;
// the cash flow is then marked unavailable. The independent stages run
// concurrently once the aggregation snapshot exists.
func (e *Engine) Run(entries, priorEntries []model.LedgerEntry) *Result {
	set := ledger.Aggregate(entries)

	r := &Result{
		Summary:  fec.Summarize(entries),
		Balances: set.Accounts(),
		set:      set,
	}

	var prior model.BalanceSet
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if len(priorEntries) > 0 {
			prior = ledger.Aggregate(priorEntries)
		}
	}()

	wg.Add(4)
	go func() { defer wg.Done(); r.BalanceSheet = e.bsb.Build(set) }()
	go func() { defer wg.Done(); r.IncomeStatement = e.isb.Build(set) }()
	go func() { defer wg.Done(); r.SIG = statements.BuildSIG(set) }()
	go func() { defer wg.Done(); r.Cycles = cycles.Analyze(entries) }()
	wg.Wait()

	r.CashFlow = statements.BuildCashFlow(set, prior)

	revenue := decimal.Zero
	if r.IncomeStatement != nil {
		revenue = r.IncomeStatement.Revenue
	}
	total := decimal.Zero
	if r.BalanceSheet != nil {
		total = r.BalanceSheet.TotalAssets
	}
	r.Materiality = materiality.Compute(revenue, total)

	return r
}
