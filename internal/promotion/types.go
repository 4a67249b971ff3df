package promotion

import "encoding/json"

// Type discriminates the per-type settings schema of a promotion. It is
// chosen once at creation and never changes afterwards.
type Type string

const (
	TypeWelcomeBonus  Type = "welcome_bonus"
	TypeCashback      Type = "cashback"
	TypeWeekendBonus  Type = "weekend_bonus"
	TypeDepositBonus  Type = "deposit_bonus"
	TypeReferralBonus Type = "referral_bonus"
	TypeLoseAllRefund Type = "lose_all_refund"
)

// Types lists every valid promotion type in display order.
var Types = []Type{
	TypeWelcomeBonus,
	TypeCashback,
	TypeWeekendBonus,
	TypeDepositBonus,
	TypeReferralBonus,
	TypeLoseAllRefund,
}

// Valid reports whether t is a known promotion type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Tier is one (pairs-lost, refund-multiplier) rule within a lose_all_refund
// promotion. Fields are pointers because a tier starts blank in the editor.
type Tier struct {
	Pairs      *int     `json:"pairs,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
}

// Settings is the type-specific configuration attached to a promotion. The
// struct covers the union of all six schemas; which fields are meaningful is
// decided by the owning promotion's type, and ValidateSettings enforces the
// per-type rules. On the wire settings travel as an encoded blob (see codec).
type Settings struct {
	Type string `json:"type,omitempty"`

	// welcome_bonus
	BonusPercentage *float64 `json:"bonus_percentage,omitempty"`
	// cashback
	CashbackPercentage *float64 `json:"cashback_percentage,omitempty"`
	// weekend_bonus
	BonusMultiplier *float64 `json:"bonus_multiplier,omitempty"`
	// deposit_bonus
	DepositBonusPercentage *float64 `json:"deposit_bonus_percentage,omitempty"`
	MinDeposit             *float64 `json:"min_deposit,omitempty"`
	// referral_bonus
	ReferralBonusAmount *float64 `json:"referral_bonus_amount,omitempty"`
	RefereeBonusAmount  *float64 `json:"referee_bonus_amount,omitempty"`
	// lose_all_refund
	Tiers            []Tier   `json:"tiers,omitempty"`
	MinOdds          *float64 `json:"min_odds,omitempty"`
	MinStake         *float64 `json:"min_stake,omitempty"`
	MaxRefundAmount  *float64 `json:"max_refund_amount,omitempty"`
	RefundDelayHours *int     `json:"refund_delay_hours,omitempty"`
	RefundConditions *string  `json:"refund_conditions,omitempty"`

	// Applicable categories. BettingTypes applies to every promotion type,
	// MarketTypes only to lose_all_refund.
	BettingTypes []string `json:"betting_types,omitempty"`
	MarketTypes  []string `json:"market_types,omitempty"`

	// Legacy lose_all_refund records predate the tier list. The codec keeps
	// these opaque so old records still round-trip; no validation applies.
	RequiredLossPairs *int     `json:"required_loss_pairs,omitempty"`
	RefundAmount      *float64 `json:"refund_amount,omitempty"`
}

// Promotion is the campaign record as exchanged with the promotion store.
// Optional fields are pointers; absent means unlimited or unset. Settings
// travels as an encoded blob from the store's point of view.
type Promotion struct {
	ID                int64           `json:"id,omitempty"`
	Name              string          `json:"name"`
	Type              Type            `json:"type"`
	IsActive          bool            `json:"is_active"`
	Priority          int             `json:"priority"`
	IsStackable       bool            `json:"is_stackable"`
	StartsAt          *string         `json:"starts_at,omitempty"`
	EndsAt            *string         `json:"ends_at,omitempty"`
	ScheduleDays      []int           `json:"schedule_days,omitempty"`
	ScheduleStartTime *string         `json:"schedule_start_time,omitempty"`
	ScheduleEndTime   *string         `json:"schedule_end_time,omitempty"`
	UserLimitTotal    *int            `json:"user_limit_total,omitempty"`
	UserLimitPerDay   *int            `json:"user_limit_per_day,omitempty"`
	GlobalQuota       *int            `json:"global_quota,omitempty"`
	GlobalBudget      *float64        `json:"global_budget,omitempty"`
	MaxPayoutPerBill  *float64        `json:"max_payout_per_bill,omitempty"`
	MaxPayoutPerDay   *float64        `json:"max_payout_per_day,omitempty"`
	MaxPayoutPerUser  *float64        `json:"max_payout_per_user,omitempty"`
	Settings          json.RawMessage `json:"settings,omitempty"`
	CreatedAt         *string         `json:"created_at,omitempty"`
	UpdatedAt         *string         `json:"updated_at,omitempty"`
}

// Detail is a promotion with its settings decoded to the structured form,
// which is what the console renders. Embedding shadows the raw blob.
type Detail struct {
	Promotion
	Settings Settings `json:"settings"`
}
