package promotion

import "sort"

// TierListEditor maintains the refund tier list of a lose_all_refund draft.
// The list keeps its edit order so index-based operations stay stable while
// the user types; the sorted view used by summaries is derived on demand and
// never touches the underlying list.
type TierListEditor struct {
	tiers []Tier
}

// NewTierListEditor starts an editor from existing tiers (copied) or empty.
func NewTierListEditor(tiers []Tier) *TierListEditor {
	copied := make([]Tier, len(tiers))
	copy(copied, tiers)
	return &TierListEditor{tiers: copied}
}

// Len returns the number of tiers in the list.
func (e *TierListEditor) Len() int {
	return len(e.tiers)
}

// Append inserts a blank tier at the end of the list.
func (e *TierListEditor) Append() {
	e.tiers = append(e.tiers, Tier{})
}

// Remove deletes the tier at index, shifting subsequent indices down.
// Out-of-range indices are ignored.
func (e *TierListEditor) Remove(index int) {
	if index < 0 || index >= len(e.tiers) {
		return
	}
	e.tiers = append(e.tiers[:index], e.tiers[index+1:]...)
}

// SetPairs replaces the pairs field of one tier without touching the rest.
func (e *TierListEditor) SetPairs(index, pairs int) {
	if index < 0 || index >= len(e.tiers) {
		return
	}
	e.tiers[index].Pairs = &pairs
}

// SetMultiplier replaces the multiplier field of one tier without touching
// the rest.
func (e *TierListEditor) SetMultiplier(index int, multiplier float64) {
	if index < 0 || index >= len(e.tiers) {
		return
	}
	e.tiers[index].Multiplier = &multiplier
}

// Tiers returns a copy of the list in edit order.
func (e *TierListEditor) Tiers() []Tier {
	copied := make([]Tier, len(e.tiers))
	copy(copied, e.tiers)
	return copied
}

// DisplayOrder returns a copy of the list sorted by ascending pairs, the
// order summaries and cards present tiers in. Blank pairs sort as zero.
func (e *TierListEditor) DisplayOrder() []Tier {
	sorted := e.Tiers()
	sort.SliceStable(sorted, func(i, j int) bool {
		return tierPairs(sorted[i]) < tierPairs(sorted[j])
	})
	return sorted
}

func tierPairs(t Tier) int {
	if t.Pairs == nil {
		return 0
	}
	return *t.Pairs
}
