// Package pcg classifies account numbers against the French national
// chart of accounts (Plan Comptable Général). Classification is driven
// by a versioned rule table, not hard-coded per account.
package pcg

// Bucket is the top-level destination of an account.
type Bucket string

const (
	BucketBalanceSheet    Bucket = "balance_sheet"
	BucketIncomeStatement Bucket = "income_statement"
	BucketSpecial         Bucket = "special"
	BucketUnclassified    Bucket = "unclassified"
)

// Side is a balance-sheet position.
type Side string

const (
	SideAsset     Side = "asset"
	SideLiability Side = "liability"
	SideNone      Side = "none"
)

// Nature is an income-statement position.
type Nature string

const (
	NatureExpense Nature = "expense"
	NatureRevenue Nature = "revenue"
	NatureNone    Nature = "none"
)
