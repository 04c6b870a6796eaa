package statements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PartitionBySign(t *testing.T) {
	r := NewDoublePositionResolver(testClassifier(t))

	set := setOf(
		bal("411001", "Client Dupont", "500.00", "0"),
		bal("411002", "Client Martin", "0", "200.00"),
		bal("419000", "Clients créditeurs", "0", "50.00"),
	)

	positions := r.Resolve(set)
	require.Len(t, positions, 1)

	dp := positions[0]
	assert.Equal(t, "41", dp.Root)
	assert.True(t, dp.AssetAmount.Equal(dec("500.00")), "actif = %s", dp.AssetAmount)
	assert.True(t, dp.LiabilityAmount.Equal(dec("250.00")), "passif = %s", dp.LiabilityAmount)

	require.Len(t, dp.AssetDetail, 1)
	assert.Equal(t, "411001", dp.AssetDetail[0].AccountNum)
	require.Len(t, dp.LiabilityDetail, 2)
	assert.Equal(t, "411002", dp.LiabilityDetail[0].AccountNum)
	assert.Equal(t, "419000", dp.LiabilityDetail[1].AccountNum)
}

func TestResolve_VATSubtypesNeverNetted(t *testing.T) {
	r := NewDoublePositionResolver(testClassifier(t))

	// Deductible VAT (debit) and collected VAT (credit): both must
	// survive at full value under their own root.
	set := setOf(
		bal("445660", "TVA déductible", "300.00", "0"),
		bal("445710", "TVA collectée", "0", "800.00"),
	)

	positions := r.Resolve(set)
	require.Len(t, positions, 2)

	assert.Equal(t, "4456", positions[0].Root)
	assert.True(t, positions[0].AssetAmount.Equal(dec("300.00")))
	assert.True(t, positions[0].LiabilityAmount.IsZero())

	assert.Equal(t, "4457", positions[1].Root)
	assert.True(t, positions[1].LiabilityAmount.Equal(dec("800.00")))
	assert.True(t, positions[1].AssetAmount.IsZero())
}

func TestResolve_ZeroBalanceExcluded(t *testing.T) {
	r := NewDoublePositionResolver(testClassifier(t))

	set := setOf(
		bal("411001", "Client soldé", "700.00", "700.00"),
		bal("401001", "Fournisseur", "0", "120.00"),
	)

	positions := r.Resolve(set)
	require.Len(t, positions, 1)
	assert.Equal(t, "40", positions[0].Root)
	assert.True(t, positions[0].LiabilityAmount.Equal(dec("120.00")))
	assert.Empty(t, positions[0].AssetDetail)
}

func TestCovers(t *testing.T) {
	r := NewDoublePositionResolver(testClassifier(t))

	assert.True(t, r.Covers("411000"))
	assert.True(t, r.Covers("512000"))
	assert.True(t, r.Covers("521000"))
	assert.True(t, r.Covers("445710"))

	// Fixed positions and other classes stay out.
	assert.False(t, r.Covers("519000"))
	assert.False(t, r.Covers("486000"))
	assert.False(t, r.Covers("487000"))
	assert.False(t, r.Covers("211000"))
	assert.False(t, r.Covers("606300"))
}
