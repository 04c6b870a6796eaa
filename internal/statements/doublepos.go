package statements

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fecscope/fecscope/internal/model"
	"github.com/fecscope/fecscope/internal/pcg"
)

// DoublePosition is the two-sided resolution of one account root:
// debit-balance sub-accounts on the asset side, credit-balance
// sub-accounts on the liability side, never netted across.
type DoublePosition struct {
	Root            string
	AssetLabel      string
	LiabilityLabel  string
	AssetAmount     decimal.Decimal
	LiabilityAmount decimal.Decimal
	AssetDetail     []model.AccountBalance
	LiabilityDetail []model.AccountBalance
}

// DoublePositionResolver partitions the sub-accounts of configured
// double-position roots by the sign of each sub-account's own balance.
// The root's aggregate balance is never used: two sub-accounts of
// opposite sign both appear, at full absolute value, on their own side.
type DoublePositionResolver struct {
	cls *pcg.Classifier
}

// NewDoublePositionResolver builds a resolver over a classifier's rule
// table.
func NewDoublePositionResolver(cls *pcg.Classifier) *DoublePositionResolver {
	return &DoublePositionResolver{cls: cls}
}

// Covers reports whether the account is handled by this resolver: a
// class 4 or 5 account with no fixed position and a configured
// double-position root. Fixed-position accounts are excluded before any
// sign handling so no account is processed twice.
func (r *DoublePositionResolver) Covers(account string) bool {
	class := model.AccountClass(account)
	if class != 4 && class != 5 {
		return false
	}
	if _, fixed := r.cls.FixedSide(account); fixed {
		return false
	}
	_, ok := r.cls.DoubleRoot(account)
	return ok
}

// Resolve partitions every covered account in the snapshot, returning
// one DoublePosition per root that has at least one non-zero
// sub-account, sorted by root.
func (r *DoublePositionResolver) Resolve(set model.BalanceSet) []DoublePosition {
	byRoot := make(map[string]*DoublePosition)

	for _, b := range set.Accounts() {
		if !r.Covers(b.AccountNum) {
			continue
		}
		if b.Balance.IsZero() {
			// A balanced sub-account sits on neither side.
			continue
		}

		root, _ := r.cls.DoubleRoot(b.AccountNum)
		dp, ok := byRoot[root.Root]
		if !ok {
			dp = &DoublePosition{
				Root:            root.Root,
				AssetLabel:      root.AssetLabel,
				LiabilityLabel:  root.LiabilityLabel,
				AssetAmount:     decimal.Zero,
				LiabilityAmount: decimal.Zero,
			}
			if dp.AssetLabel == "" {
				dp.AssetLabel = r.cls.Label(root.Root) + " (actif)"
			}
			if dp.LiabilityLabel == "" {
				dp.LiabilityLabel = r.cls.Label(root.Root) + " (passif)"
			}
			byRoot[root.Root] = dp
		}

		if b.Balance.IsPositive() {
			dp.AssetAmount = dp.AssetAmount.Add(b.Balance)
			dp.AssetDetail = append(dp.AssetDetail, b)
		} else {
			dp.LiabilityAmount = dp.LiabilityAmount.Add(b.Balance.Neg())
			dp.LiabilityDetail = append(dp.LiabilityDetail, b)
		}
	}

	out := make([]DoublePosition, 0, len(byRoot))
	for _, dp := range byRoot {
		out = append(out, *dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Root < out[j].Root })
	return out
}
