package statements

import (
	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
)

// BuildCashFlow reconciles the period's cash movements by the indirect
// method over two balance snapshots. With no prior snapshot the result
// is marked unavailable: two periods are a documented precondition, not
// an exceptional state.
func BuildCashFlow(current, prior model.BalanceSet) *model.CashFlowResult {
	if len(current) == 0 || len(prior) == 0 {
		return &model.CashFlowResult{Available: false}
	}

	cf := &model.CashFlowResult{Available: true}

	// Capacité d'autofinancement. The book value of disposals (675) is
	// added back here and reused in the investing reconstruction below;
	// the ledger does not carry original acquisition costs, so this
	// shared use is a documented approximation.
	disposalBookValue := expense(current, "675")
	disposalProceeds := revenue(current, "775")
	cf.CAF = model.CAFDetail{
		NetResult:         netResult(current),
		Depreciation:      expense(current, "681", "686", "687"),
		Reversals:         revenue(current, "781", "786", "787"),
		DisposalBookValue: disposalBookValue,
		DisposalProceeds:  disposalProceeds,
	}
	cf.CAF.Total = cf.CAF.NetResult.
		Add(cf.CAF.Depreciation).
		Sub(cf.CAF.Reversals).
		Add(disposalBookValue).
		Sub(disposalProceeds)

	// Working-capital movements. For any non-cash balance-sheet
	// account the cash contribution is minus the change in its signed
	// balance: a growing receivable uses cash, a growing payable
	// provides it. The category prefix sets must stay disjoint (419 and
	// 409 cross sides relative to their 41/40 parents) or an account
	// would contribute twice.
	delta := func(include []string, exclude []string) decimal.Decimal {
		return sumSigned(current, include, exclude).Sub(sumSigned(prior, include, exclude))
	}
	flow := func(include []string, exclude []string) decimal.Decimal {
		return delta(include, exclude).Neg()
	}

	cf.WorkingCapital = model.WorkingCapitalFlow{
		Stock:         flow([]string{"3"}, []string{"39"}),
		Receivables:   flow([]string{"41", "409", "486", "4456"}, []string{"419"}),
		Payables:      flow([]string{"40", "419", "487"}, []string{"409"}),
		TaxAndPayroll: flow([]string{"42", "43", "44"}, []string{"4456"}),
		Other:         flow([]string{"45", "46", "47", "48"}, []string{"486", "487"}),
	}
	cf.WorkingCapital.Total = cf.WorkingCapital.Stock.
		Add(cf.WorkingCapital.Receivables).
		Add(cf.WorkingCapital.Payables).
		Add(cf.WorkingCapital.TaxAndPayroll).
		Add(cf.WorkingCapital.Other)

	// Investing: gross fixed-asset movement per category, with the book
	// value of disposals added back (a disposal reduces gross value
	// without being a cash outflow) and disposal proceeds counted as
	// the inflow.
	cf.Investing = model.InvestingFlow{
		Intangible:        delta([]string{"20"}, nil),
		Tangible:          delta([]string{"21", "22", "23"}, nil),
		Financial:         delta([]string{"25", "26", "27"}, nil),
		DisposalBookValue: disposalBookValue,
		DisposalProceeds:  disposalProceeds,
	}
	grossMovement := cf.Investing.Intangible.
		Add(cf.Investing.Tangible).
		Add(cf.Investing.Financial)
	cf.Investing.Total = grossMovement.Add(disposalBookValue).Neg().Add(disposalProceeds)

	// Financing: capital and borrowing movements.
	cf.Financing = model.FinancingFlow{
		CapitalChange:   delta([]string{"10"}, nil).Neg(),
		BorrowingChange: delta([]string{"16", "17"}, nil).Neg(),
	}
	cf.Financing.Total = cf.Financing.CapitalChange.Add(cf.Financing.BorrowingChange)

	// Reconciliation against the observed treasury movement.
	opening := treasury(prior)
	closing := treasury(current)
	computed := cf.CAF.Total.
		Add(cf.WorkingCapital.Total).
		Add(cf.Investing.Total).
		Add(cf.Financing.Total)
	observed := closing.Sub(opening)

	cf.Summary = model.CashFlowSummary{
		ComputedChange:  computed,
		OpeningTreasury: opening,
		ClosingTreasury: closing,
		ObservedChange:  observed,
		Gap:             computed.Sub(observed).Abs(),
	}
	cf.Validation = model.Validation{
		Valid: cf.Summary.Gap.LessThanOrEqual(cashFlowTolerance),
		Gap:   cf.Summary.Gap,
	}
	cf.Notes = []string{
		"La valeur comptable des cessions (675) est réintégrée à la fois dans la CAF et dans la reconstruction des flux d'investissement : approximation documentée, le FEC ne portant pas les coûts d'acquisition d'origine.",
	}
	return cf
}
