package evaluation

import "promo-console/internal/promotion"

// Default selections, as the test form seeds them.
var (
	defaultFirstSelection = Selection{
		Sport:  "football",
		Result: "lose",
		Market: "handicap",
		Period: "full_time",
		Odds:   1.9,
	}
	defaultAddedSelection = Selection{
		Sport:  "boxing",
		Result: "lose",
		Market: "handicap",
		Period: "full_time",
		Odds:   1.9,
	}
)

// Builder assembles a trial-evaluation request. It always holds at least one
// selection: the first one is seeded with the console's default outcome and
// removal below one entry is a no-op, matching the test form.
type Builder struct {
	stake       *float64
	promotionID *int64
	selections  []Selection
}

// NewBuilder starts a request with the default first selection.
func NewBuilder() *Builder {
	return &Builder{
		selections: []Selection{defaultFirstSelection},
	}
}

// SetStake records the stake amount.
func (b *Builder) SetStake(stake float64) {
	b.stake = &stake
}

// SetPromotionID records which promotion to evaluate.
func (b *Builder) SetPromotionID(id int64) {
	b.promotionID = &id
}

// AddSelection appends a new selection seeded with the default added outcome.
func (b *Builder) AddSelection() {
	b.selections = append(b.selections, defaultAddedSelection)
}

// SetSelection replaces the selection at index. Out-of-range indices are
// ignored.
func (b *Builder) SetSelection(index int, s Selection) {
	if index < 0 || index >= len(b.selections) {
		return
	}
	b.selections[index] = s
}

// RemoveSelection deletes the selection at index, but never below one entry.
func (b *Builder) RemoveSelection(index int) {
	if len(b.selections) <= 1 {
		return
	}
	if index < 0 || index >= len(b.selections) {
		return
	}
	b.selections = append(b.selections[:index], b.selections[index+1:]...)
}

// Selections returns a copy of the current selection list.
func (b *Builder) Selections() []Selection {
	copied := make([]Selection, len(b.selections))
	copy(copied, b.selections)
	return copied
}

// Build validates the request locally and returns it. Both stake and
// promotion id must be present; violations are reported field-keyed and
// nothing is sent anywhere.
func (b *Builder) Build() (Request, error) {
	errs := promotion.FieldErrors{}
	if b.stake == nil || *b.stake <= 0 {
		errs.Add("stake", "Stake is required and must be positive")
	}
	if b.promotionID == nil {
		errs.Add("promotion_id", "A promotion must be selected")
	}
	if len(errs) > 0 {
		return Request{}, &promotion.ValidationError{Fields: errs}
	}

	return Request{
		Stake:       *b.stake,
		PromotionID: *b.promotionID,
		Selections:  b.Selections(),
	}, nil
}
