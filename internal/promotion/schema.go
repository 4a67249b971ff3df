package promotion

import "fmt"

// FieldKind tells the console which input widget a settings field needs.
type FieldKind string

const (
	FieldNumber  FieldKind = "number"
	FieldInteger FieldKind = "integer"
	FieldText    FieldKind = "text"
)

// FieldSpec describes one settings field of a promotion type.
type FieldSpec struct {
	Key      string
	Kind     FieldKind
	Min      *float64
	Max      *float64
	Required bool
}

// FieldErrors collects validation messages keyed by field. Tier errors are
// keyed by index ("tiers[2].pairs") so every broken tier surfaces at once.
type FieldErrors map[string]string

// Add records a message for a field, keeping the first message per key.
func (e FieldErrors) Add(key, message string) {
	if _, exists := e[key]; !exists {
		e[key] = message
	}
}

// Merge copies every entry of other into e, keeping existing messages.
func (e FieldErrors) Merge(other FieldErrors) {
	for key, message := range other {
		e.Add(key, message)
	}
}

// ValidationError is the local, recoverable failure of a submit attempt. It
// carries the complete field-keyed error set; it is never sent over the
// network.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

func floatPtr(v float64) *float64 { return &v }

// FieldsFor returns the ordered settings field descriptors for a promotion
// type. Category sets and the tier list are edited through their own editors
// and are not described here.
func FieldsFor(t Type) []FieldSpec {
	switch t {
	case TypeWelcomeBonus:
		return []FieldSpec{
			{Key: "bonus_percentage", Kind: FieldNumber, Min: floatPtr(1), Required: true},
		}
	case TypeCashback:
		return []FieldSpec{
			{Key: "cashback_percentage", Kind: FieldNumber, Min: floatPtr(1), Max: floatPtr(100), Required: true},
		}
	case TypeWeekendBonus:
		return []FieldSpec{
			{Key: "bonus_multiplier", Kind: FieldNumber, Min: floatPtr(1), Max: floatPtr(10), Required: true},
		}
	case TypeDepositBonus:
		return []FieldSpec{
			{Key: "deposit_bonus_percentage", Kind: FieldNumber, Min: floatPtr(1), Max: floatPtr(500), Required: true},
			{Key: "min_deposit", Kind: FieldNumber, Min: floatPtr(0), Required: true},
		}
	case TypeReferralBonus:
		return []FieldSpec{
			{Key: "referral_bonus_amount", Kind: FieldNumber, Min: floatPtr(0), Required: true},
			{Key: "referee_bonus_amount", Kind: FieldNumber, Min: floatPtr(0), Required: true},
		}
	case TypeLoseAllRefund:
		return []FieldSpec{
			{Key: "min_odds", Kind: FieldNumber, Min: floatPtr(0)},
			{Key: "min_stake", Kind: FieldNumber, Min: floatPtr(0)},
			{Key: "max_refund_amount", Kind: FieldNumber, Min: floatPtr(0)},
			{Key: "refund_delay_hours", Kind: FieldInteger, Min: floatPtr(0)},
			{Key: "refund_conditions", Kind: FieldText},
		}
	default:
		return nil
	}
}

// ValidateSettings checks the per-type constraints and returns every
// violation keyed by field. No check short-circuits another; the caller gets
// the full set in one pass. An empty result means the settings are valid for
// the type.
func ValidateSettings(t Type, s Settings) FieldErrors {
	errs := FieldErrors{}

	switch t {
	case TypeWelcomeBonus:
		if s.BonusPercentage == nil || *s.BonusPercentage < 1 {
			errs.Add("bonus_percentage", "Bonus percentage is required and must be at least 1%")
		}
	case TypeCashback:
		if s.CashbackPercentage == nil || *s.CashbackPercentage < 1 {
			errs.Add("cashback_percentage", "Cashback percentage is required and must be at least 1%")
		} else if *s.CashbackPercentage > 100 {
			errs.Add("cashback_percentage", "Cashback percentage must not exceed 100%")
		}
	case TypeWeekendBonus:
		if s.BonusMultiplier == nil || *s.BonusMultiplier < 1 || *s.BonusMultiplier > 10 {
			errs.Add("bonus_multiplier", "Bonus multiplier is required and must be between 1 and 10")
		}
	case TypeDepositBonus:
		if s.DepositBonusPercentage == nil || *s.DepositBonusPercentage < 1 || *s.DepositBonusPercentage > 500 {
			errs.Add("deposit_bonus_percentage", "Deposit bonus percentage is required and must be between 1 and 500")
		}
		if s.MinDeposit == nil || *s.MinDeposit < 0 {
			errs.Add("min_deposit", "Minimum deposit is required and must not be negative")
		}
	case TypeReferralBonus:
		if s.ReferralBonusAmount == nil || *s.ReferralBonusAmount < 0 {
			errs.Add("referral_bonus_amount", "Referral bonus amount is required and must not be negative")
		}
		if s.RefereeBonusAmount == nil || *s.RefereeBonusAmount < 0 {
			errs.Add("referee_bonus_amount", "Referee bonus amount is required and must not be negative")
		}
	case TypeLoseAllRefund:
		validateLoseAllRefund(s, errs)
	default:
		errs.Add("type", fmt.Sprintf("unknown promotion type %q", string(t)))
	}

	return errs
}

func validateLoseAllRefund(s Settings, errs FieldErrors) {
	if len(s.Tiers) == 0 {
		errs.Add("tiers", "At least one refund tier is required")
	}
	for i, tier := range s.Tiers {
		if tier.Pairs == nil || *tier.Pairs < 1 {
			errs.Add(fmt.Sprintf("tiers[%d].pairs", i), "Pairs is required and must be at least 1")
		}
		if tier.Multiplier == nil || *tier.Multiplier < 1 {
			errs.Add(fmt.Sprintf("tiers[%d].multiplier", i), "Multiplier is required and must be at least 1")
		}
	}
	if s.MinOdds != nil && *s.MinOdds < 0 {
		errs.Add("min_odds", "Minimum odds must not be negative")
	}
	if s.MinStake != nil && *s.MinStake < 0 {
		errs.Add("min_stake", "Minimum stake must not be negative")
	}
	if s.MaxRefundAmount != nil && *s.MaxRefundAmount < 0 {
		errs.Add("max_refund_amount", "Maximum refund amount must not be negative")
	}
	if s.RefundDelayHours != nil && *s.RefundDelayHours < 0 {
		errs.Add("refund_delay_hours", "Refund delay must not be negative")
	}
}
