package pcg

import (
	"strings"
	"sync"

	"github.com/fecscope/fecscope/internal/model"
)

// Classifier maps account numbers to statement buckets, balance-sheet
// sides and labels using an immutable rule table. It is a pure function
// of (table, account); the memo cache is an optimization, not state a
// caller can observe. Safe for concurrent use.
type Classifier struct {
	table *RuleTable

	mu   sync.RWMutex
	memo map[string]classification
}

type classification struct {
	bucket Bucket
	side   Side
	nature Nature
}

// NewClassifier builds a Classifier over a validated rule table.
func NewClassifier(table *RuleTable) *Classifier {
	return &Classifier{table: table, memo: make(map[string]classification)}
}

// Classify returns the top-level bucket for an account. Class digits 1-5
// and 8 go to the balance sheet, 6-7 to the income statement, 9 to the
// special bucket; class 0 and non-numeric accounts are unclassified.
func (c *Classifier) Classify(account string) Bucket {
	return c.resolve(account).bucket
}

// BalanceSheetSide returns the fixed balance-sheet side of an account,
// or SideNone when the account is outside the balance sheet or position
// depends on its balance sign (resolved separately).
func (c *Classifier) BalanceSheetSide(account string) Side {
	return c.resolve(account).side
}

// IncomeStatementSide returns expense for class 6, revenue for class 7,
// and NatureNone otherwise.
func (c *Classifier) IncomeStatementSide(account string) Nature {
	return c.resolve(account).nature
}

// Label returns the label of the longest matching prefix in the rule
// table, falling back to a generic label. Never fails.
func (c *Classifier) Label(account string) string {
	if label, _, ok := c.table.labels.lookup(account); ok {
		return label
	}
	return "Compte " + account
}

// FixedSide reports whether the account has a configured fixed
// balance-sheet position and which side it is.
func (c *Classifier) FixedSide(account string) (Side, bool) {
	side, _, ok := c.table.fixed.lookup(account)
	return side, ok
}

// DoubleRoot returns the longest configured double-position root
// covering the account. Fixed-position accounts never resolve to a
// double root; that exclusion is checked first to avoid handling an
// account twice.
func (c *Classifier) DoubleRoot(account string) (DoubleRoot, bool) {
	if _, fixed := c.FixedSide(account); fixed {
		return DoubleRoot{}, false
	}
	dr, _, ok := c.table.doubles.lookup(account)
	return dr, ok
}

// ContraTarget returns the 2-digit gross root a contra account nets
// against.
func (c *Classifier) ContraTarget(account string) (string, bool) {
	return c.table.ContraTarget(account)
}

// IsVATAccount reports whether the account belongs to the VAT subtree
// (445). VAT sub-types must never be netted against each other or
// against unrelated class-44 accounts.
func (c *Classifier) IsVATAccount(account string) bool {
	return strings.HasPrefix(account, "445")
}

// IsAccrualAccount reports whether the account is a prepaid charge or
// deferred revenue account (486/487).
func (c *Classifier) IsAccrualAccount(account string) bool {
	return strings.HasPrefix(account, "486") || strings.HasPrefix(account, "487")
}

func (c *Classifier) resolve(account string) classification {
	c.mu.RLock()
	cl, ok := c.memo[account]
	c.mu.RUnlock()
	if ok {
		return cl
	}

	cl = c.classify(account)

	c.mu.Lock()
	c.memo[account] = cl
	c.mu.Unlock()
	return cl
}

func (c *Classifier) classify(account string) classification {
	cl := classification{bucket: BucketUnclassified, side: SideNone, nature: NatureNone}

	switch model.AccountClass(account) {
	case 1:
		cl.bucket = BucketBalanceSheet
		// Known contras (uncalled capital, accumulated losses) sit on
		// the asset side; everything else in class 1 is a liability.
		if side, ok := c.FixedSide(account); ok {
			cl.side = side
		} else {
			cl.side = SideLiability
		}
	case 2, 3:
		cl.bucket = BucketBalanceSheet
		cl.side = SideAsset
	case 4, 5:
		cl.bucket = BucketBalanceSheet
		if side, ok := c.FixedSide(account); ok {
			cl.side = side
		}
		// No fixed rule: position depends on the balance sign, left to
		// the double-position resolver.
	case 6:
		cl.bucket = BucketIncomeStatement
		cl.nature = NatureExpense
	case 7:
		cl.bucket = BucketIncomeStatement
		cl.nature = NatureRevenue
	case 8:
		cl.bucket = BucketBalanceSheet
	case 9:
		cl.bucket = BucketSpecial
	}

	return cl
}
