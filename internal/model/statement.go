package model

import "github.com/shopspring/decimal"

// LineItem is a single statement row: a presentation key (2-digit account
// prefix or section key), its label, and gross/contra/net amounts.
type LineItem struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Gross  decimal.Decimal `json:"gross"`
	Contra decimal.Decimal `json:"contra"` // amortization/depreciation netted off
	Net    decimal.Decimal `json:"net"`
}

// Section groups ordered line items under a named statement heading.
type Section struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Validation carries the data-quality outcome of a statement build. A
// failed check never prevents the statement from being returned; the gap
// and warnings let the caller decide whether to block or merely warn.
type Validation struct {
	Valid    bool            `json:"isValid"`
	Gap      decimal.Decimal `json:"gap"`
	Warnings []string        `json:"warnings,omitempty"`
}

// BalanceSheet is the two-sided statement of position.
type BalanceSheet struct {
	Assets           []Section       `json:"assets"`
	Liabilities      []Section       `json:"liabilities"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetResult        decimal.Decimal `json:"netResult"` // appended to equity
	Validation       Validation      `json:"validation"`
}

// IncomeCategory is one of the four income-statement categories, holding
// its expense and revenue lines and the category result.
type IncomeCategory struct {
	Label         string          `json:"label"`
	Expenses      []LineItem      `json:"expenses"`
	Revenues      []LineItem      `json:"revenues"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalRevenues decimal.Decimal `json:"totalRevenues"`
	Result        decimal.Decimal `json:"result"`
}

// IncomeStatement presents classes 6 and 7 at 2-digit granularity within
// four categories, plus the result cascade.
type IncomeStatement struct {
	Operating           IncomeCategory  `json:"operating"`
	Financial           IncomeCategory  `json:"financial"`
	Extraordinary       IncomeCategory  `json:"extraordinary"`
	TaxAndProfitSharing []LineItem      `json:"taxAndProfitSharing"`
	TotalTax            decimal.Decimal `json:"totalTax"`
	Revenue             decimal.Decimal `json:"revenue"` // chiffre d'affaires
	OperatingResult     decimal.Decimal `json:"operatingResult"`
	FinancialResult     decimal.Decimal `json:"financialResult"`
	CurrentResult       decimal.Decimal `json:"currentResult"`
	ExtraordinaryResult decimal.Decimal `json:"extraordinaryResult"`
	NetResult           decimal.Decimal `json:"netResult"`
	Validation          Validation      `json:"validation"`
}

// SIGLine is one row of the management-balances cascade.
type SIGLine struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// SIGResult holds the ten soldes intermédiaires de gestion.
type SIGResult struct {
	Lines               []SIGLine       `json:"lines"`
	Revenue             decimal.Decimal `json:"revenue"`
	CommercialMargin    decimal.Decimal `json:"commercialMargin"`
	Production          decimal.Decimal `json:"production"`
	ValueAdded          decimal.Decimal `json:"valueAdded"`
	EBE                 decimal.Decimal `json:"ebe"`
	OperatingResult     decimal.Decimal `json:"operatingResult"`
	CurrentResult       decimal.Decimal `json:"currentResult"`
	ExtraordinaryResult decimal.Decimal `json:"extraordinaryResult"`
	DisposalResult      decimal.Decimal `json:"disposalResult"`
	NetResult           decimal.Decimal `json:"netResult"`
	Validation          Validation      `json:"validation"`
}

// CAFDetail breaks down cash flow from operations before working-capital
// changes (capacité d'autofinancement, indirect method).
type CAFDetail struct {
	NetResult         decimal.Decimal `json:"netResult"`
	Depreciation      decimal.Decimal `json:"depreciation"`      // dotations 681/686/687
	Reversals         decimal.Decimal `json:"reversals"`         // reprises 781/786/787
	DisposalBookValue decimal.Decimal `json:"disposalBookValue"` // 675 add-back
	DisposalProceeds  decimal.Decimal `json:"disposalProceeds"`  // 775 removed
	Total             decimal.Decimal `json:"total"`
}

// WorkingCapitalFlow holds the period-over-period working-capital
// movements by category, signed as cash flows.
type WorkingCapitalFlow struct {
	Stock         decimal.Decimal `json:"stock"`
	Receivables   decimal.Decimal `json:"receivables"`
	Payables      decimal.Decimal `json:"payables"`
	TaxAndPayroll decimal.Decimal `json:"taxAndPayroll"`
	Other         decimal.Decimal `json:"other"`
	Total         decimal.Decimal `json:"total"`
}

// InvestingFlow reconstructs investment cash flows from gross fixed-asset
// movements adjusted for disposals.
type InvestingFlow struct {
	Intangible        decimal.Decimal `json:"intangible"`
	Tangible          decimal.Decimal `json:"tangible"`
	Financial         decimal.Decimal `json:"financial"`
	DisposalBookValue decimal.Decimal `json:"disposalBookValue"`
	DisposalProceeds  decimal.Decimal `json:"disposalProceeds"`
	Total             decimal.Decimal `json:"total"`
}

// FinancingFlow holds capital and borrowing movements.
type FinancingFlow struct {
	CapitalChange   decimal.Decimal `json:"varCapital"`
	BorrowingChange decimal.Decimal `json:"varBorrowings"`
	Total           decimal.Decimal `json:"total"`
}

// CashFlowSummary reconciles the computed treasury change against the
// observed one.
type CashFlowSummary struct {
	ComputedChange  decimal.Decimal `json:"variationNette"`
	OpeningTreasury decimal.Decimal `json:"openingTreasury"`
	ClosingTreasury decimal.Decimal `json:"closingTreasury"`
	ObservedChange  decimal.Decimal `json:"observedChange"`
	Gap             decimal.Decimal `json:"ecart"`
}

// CashFlowResult is the indirect-method cash-flow reconciliation over two
// period snapshots. Available is false when no prior snapshot was given.
type CashFlowResult struct {
	Available      bool               `json:"available"`
	CAF            CAFDetail          `json:"caf"`
	WorkingCapital WorkingCapitalFlow `json:"workingCapital"`
	Investing      InvestingFlow      `json:"investing"`
	Financing      FinancingFlow      `json:"financing"`
	Summary        CashFlowSummary    `json:"summary"`
	Validation     Validation         `json:"validation"`
	Notes          []string           `json:"notes,omitempty"`
}

// CycleStats aggregates ledger activity for one audit cycle.
type CycleStats struct {
	Cycle            string          `json:"cycle"`
	Label            string          `json:"label"`
	Count            int             `json:"count"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	Balance          decimal.Decimal `json:"balance"`
	DistinctAccounts int             `json:"distinctAccounts"`
}

// CycleAnalysis tags every ledger entry with its audit cycle and carries
// per-cycle aggregates for audit-scope reporting.
type CycleAnalysis struct {
	EntryCycles []string              `json:"perEntryCycle"` // aligned with the input entry order
	Stats       map[string]CycleStats `json:"statsByCycle"`
}

// MaterialityResult holds audit materiality thresholds computed from a
// banded-percentage table.
type MaterialityResult struct {
	SSG                decimal.Decimal `json:"ssg"`
	ReportingThreshold decimal.Decimal `json:"reportingThreshold"`
	ReferenceBase      decimal.Decimal `json:"referenceBase"`
	BaseKind           string          `json:"baseKind"` // "revenue" or "balance_sheet_total"
	Band               string          `json:"band"`
}
