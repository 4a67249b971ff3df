package promotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierListEditor_AppendStartsBlank(t *testing.T) {
	editor := NewTierListEditor(nil)
	editor.Append()

	require.Equal(t, 1, editor.Len())
	tier := editor.Tiers()[0]
	assert.Nil(t, tier.Pairs)
	assert.Nil(t, tier.Multiplier)
}

func TestTierListEditor_EditOrderSurvivesSortedDisplay(t *testing.T) {
	editor := NewTierListEditor(nil)
	editor.Append()
	editor.SetPairs(0, 5)
	editor.SetMultiplier(0, 2.0)
	editor.Append()
	editor.SetPairs(1, 2)
	editor.SetMultiplier(1, 1.2)
	editor.Append()
	editor.SetPairs(2, 3)

	display := editor.DisplayOrder()
	require.Len(t, display, 3)
	assert.Equal(t, 2, *display[0].Pairs)
	assert.Equal(t, 3, *display[1].Pairs)
	assert.Equal(t, 5, *display[2].Pairs)

	// The underlying list still holds the edit order, so index edits keep
	// landing on the tier the user is typing into.
	edit := editor.Tiers()
	assert.Equal(t, 5, *edit[0].Pairs)
	assert.Equal(t, 2, *edit[1].Pairs)
	assert.Equal(t, 3, *edit[2].Pairs)

	editor.SetMultiplier(2, 1.5)
	assert.Equal(t, 1.5, *editor.Tiers()[2].Multiplier)
}

func TestTierListEditor_DisplayOrderBlankPairsSortFirst(t *testing.T) {
	editor := NewTierListEditor(nil)
	editor.Append()
	editor.SetPairs(0, 4)
	editor.Append()

	display := editor.DisplayOrder()
	assert.Nil(t, display[0].Pairs)
	assert.Equal(t, 4, *display[1].Pairs)
}

func TestTierListEditor_RemoveShiftsIndices(t *testing.T) {
	editor := NewTierListEditor(nil)
	for i := 0; i < 3; i++ {
		editor.Append()
		editor.SetPairs(i, i+1)
	}

	editor.Remove(1)

	require.Equal(t, 2, editor.Len())
	assert.Equal(t, 1, *editor.Tiers()[0].Pairs)
	assert.Equal(t, 3, *editor.Tiers()[1].Pairs)
}

func TestTierListEditor_OutOfRangeIgnored(t *testing.T) {
	editor := NewTierListEditor(nil)
	editor.Append()

	editor.Remove(-1)
	editor.Remove(5)
	editor.SetPairs(3, 1)
	editor.SetMultiplier(-2, 1.5)

	assert.Equal(t, 1, editor.Len())
	assert.Nil(t, editor.Tiers()[0].Pairs)
}

func TestTierListEditor_CopiesInitialTiers(t *testing.T) {
	pairs := 2
	initial := []Tier{{Pairs: &pairs}}
	editor := NewTierListEditor(initial)

	editor.SetPairs(0, 9)

	assert.Equal(t, 2, *initial[0].Pairs)
	assert.Equal(t, 9, *editor.Tiers()[0].Pairs)
}
