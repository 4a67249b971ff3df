package processor

import (
	"context"
	"strconv"
	"strings"
	"time"

	"promo-console/internal/promotion"
)

// DraftState tracks where a form draft is in its lifecycle.
type DraftState string

const (
	// StateEmpty is a fresh draft with no edits yet.
	StateEmpty DraftState = "empty"
	// StateEditing is a draft with at least one edit applied.
	StateEditing DraftState = "editing"
	// StateSubmitting is a draft whose submit is in flight.
	StateSubmitting DraftState = "submitting"
	// StateSubmitted is terminal; the draft instance is spent.
	StateSubmitted DraftState = "submitted"
	// StateEditingWithError holds a draft whose last submit failed, with
	// every entered value preserved.
	StateEditingWithError DraftState = "editing_with_error"
)

// Draft holds the form's entered values. Numeric optionals are kept as raw
// text until submit so a half-typed value never disappears under the user;
// empty text means the field is absent.
type Draft struct {
	Name              string
	IsActive          bool
	Priority          string
	IsStackable       bool
	StartsAt          string
	EndsAt            string
	ScheduleDays      []int
	ScheduleStartTime string
	ScheduleEndTime   string
	UserLimitTotal    string
	UserLimitPerDay   string
	GlobalQuota       string
	GlobalBudget      string
	MaxPayoutPerBill  string
	MaxPayoutPerDay   string
	MaxPayoutPerUser  string
	Settings          SettingsDraft
}

// SettingsDraft holds the type-specific fields as entered. Which fields are
// read at submit time depends on the draft's promotion type.
type SettingsDraft struct {
	BonusPercentage        string
	CashbackPercentage     string
	BonusMultiplier        string
	DepositBonusPercentage string
	MinDeposit             string
	ReferralBonusAmount    string
	RefereeBonusAmount     string
	MinOdds                string
	MinStake               string
	MaxRefundAmount        string
	RefundDelayHours       string
	RefundConditions       string
}

// FormController drives one promotion draft from first edit through submit.
// The promotion type is fixed at construction and cannot be edited; changing
// type means starting a new draft.
type FormController struct {
	processor     *PromotionProcessor
	state         DraftState
	promotionType promotion.Type
	editID        *int64
	draft         Draft
	tiers         *promotion.TierListEditor
	bettingTypes  *promotion.SelectionSet
	marketTypes   *promotion.SelectionSet
	fieldErrors   promotion.FieldErrors
	submitErr     error

	// Legacy lose_all_refund fields ride along untouched so editing an old
	// record does not strip them.
	legacyLossPairs    *int
	legacyRefundAmount *float64
}

// NewForm starts an empty draft for creating a promotion of the given type.
func (p *PromotionProcessor) NewForm(t promotion.Type) (*FormController, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	return &FormController{
		processor:     p,
		state:         StateEmpty,
		promotionType: t,
		draft: Draft{
			IsActive: true,
			Priority: "50",
		},
		tiers:        promotion.NewTierListEditor(nil),
		bettingTypes: promotion.NewSelectionSet(nil),
		marketTypes:  promotion.NewSelectionSet(nil),
	}, nil
}

// EditForm loads an existing promotion into a draft. The record's type
// becomes the draft's fixed type regardless of what the caller expected.
func (p *PromotionProcessor) EditForm(ctx context.Context, id int64) (*FormController, error) {
	detail, err := p.GetPromotion(ctx, id)
	if err != nil {
		return nil, err
	}

	s := detail.Settings
	f := &FormController{
		processor:     p,
		state:         StateEditing,
		promotionType: detail.Type,
		editID:        &detail.ID,
		draft: Draft{
			Name:              detail.Name,
			IsActive:          detail.IsActive,
			Priority:          strconv.Itoa(detail.Priority),
			IsStackable:       detail.IsStackable,
			StartsAt:          stringValue(detail.StartsAt),
			EndsAt:            stringValue(detail.EndsAt),
			ScheduleDays:      detail.ScheduleDays,
			ScheduleStartTime: stringValue(detail.ScheduleStartTime),
			ScheduleEndTime:   stringValue(detail.ScheduleEndTime),
			UserLimitTotal:    formatInt(detail.UserLimitTotal),
			UserLimitPerDay:   formatInt(detail.UserLimitPerDay),
			GlobalQuota:       formatInt(detail.GlobalQuota),
			GlobalBudget:      formatFloat(detail.GlobalBudget),
			MaxPayoutPerBill:  formatFloat(detail.MaxPayoutPerBill),
			MaxPayoutPerDay:   formatFloat(detail.MaxPayoutPerDay),
			MaxPayoutPerUser:  formatFloat(detail.MaxPayoutPerUser),
			Settings: SettingsDraft{
				BonusPercentage:        formatFloat(s.BonusPercentage),
				CashbackPercentage:     formatFloat(s.CashbackPercentage),
				BonusMultiplier:        formatFloat(s.BonusMultiplier),
				DepositBonusPercentage: formatFloat(s.DepositBonusPercentage),
				MinDeposit:             formatFloat(s.MinDeposit),
				ReferralBonusAmount:    formatFloat(s.ReferralBonusAmount),
				RefereeBonusAmount:     formatFloat(s.RefereeBonusAmount),
				MinOdds:                formatFloat(s.MinOdds),
				MinStake:               formatFloat(s.MinStake),
				MaxRefundAmount:        formatFloat(s.MaxRefundAmount),
				RefundDelayHours:       formatInt(s.RefundDelayHours),
				RefundConditions:       stringValue(s.RefundConditions),
			},
		},
		tiers:              promotion.NewTierListEditor(s.Tiers),
		bettingTypes:       promotion.NewSelectionSet(s.BettingTypes),
		marketTypes:        promotion.NewSelectionSet(s.MarketTypes),
		legacyLossPairs:    s.RequiredLossPairs,
		legacyRefundAmount: s.RefundAmount,
	}
	return f, nil
}

// State returns the draft's current lifecycle state.
func (f *FormController) State() DraftState { return f.state }

// Type returns the draft's fixed promotion type.
func (f *FormController) Type() promotion.Type { return f.promotionType }

// Draft returns the entered values.
func (f *FormController) Draft() Draft { return f.draft }

// Errors returns the field errors from the last failed submit.
func (f *FormController) Errors() promotion.FieldErrors { return f.fieldErrors }

// Err returns the non-field error from the last failed submit, if any.
func (f *FormController) Err() error { return f.submitErr }

func (f *FormController) markEditing() {
	if f.state == StateEmpty || f.state == StateEditingWithError {
		f.state = StateEditing
		f.submitErr = nil
	}
}

func (f *FormController) SetName(name string) {
	f.draft.Name = name
	f.markEditing()
}

func (f *FormController) SetActive(active bool) {
	f.draft.IsActive = active
	f.markEditing()
}

func (f *FormController) SetPriority(priority string) {
	f.draft.Priority = priority
	f.markEditing()
}

func (f *FormController) SetStackable(stackable bool) {
	f.draft.IsStackable = stackable
	f.markEditing()
}

func (f *FormController) SetStartsAt(v string) {
	f.draft.StartsAt = v
	f.markEditing()
}

func (f *FormController) SetEndsAt(v string) {
	f.draft.EndsAt = v
	f.markEditing()
}

func (f *FormController) SetScheduleDays(days []int) {
	f.draft.ScheduleDays = days
	f.markEditing()
}

func (f *FormController) SetScheduleStartTime(v string) {
	f.draft.ScheduleStartTime = v
	f.markEditing()
}

func (f *FormController) SetScheduleEndTime(v string) {
	f.draft.ScheduleEndTime = v
	f.markEditing()
}

// SetLimit updates one of the caps or limits by its field key. Unknown keys
// are ignored.
func (f *FormController) SetLimit(key, value string) {
	switch key {
	case "user_limit_total":
		f.draft.UserLimitTotal = value
	case "user_limit_per_day":
		f.draft.UserLimitPerDay = value
	case "global_quota":
		f.draft.GlobalQuota = value
	case "global_budget":
		f.draft.GlobalBudget = value
	case "max_payout_per_bill":
		f.draft.MaxPayoutPerBill = value
	case "max_payout_per_day":
		f.draft.MaxPayoutPerDay = value
	case "max_payout_per_user":
		f.draft.MaxPayoutPerUser = value
	default:
		return
	}
	f.markEditing()
}

// SetSettingValue updates one type-specific field by its field key. Unknown
// keys are ignored.
func (f *FormController) SetSettingValue(key, value string) {
	switch key {
	case "bonus_percentage":
		f.draft.Settings.BonusPercentage = value
	case "cashback_percentage":
		f.draft.Settings.CashbackPercentage = value
	case "bonus_multiplier":
		f.draft.Settings.BonusMultiplier = value
	case "deposit_bonus_percentage":
		f.draft.Settings.DepositBonusPercentage = value
	case "min_deposit":
		f.draft.Settings.MinDeposit = value
	case "referral_bonus_amount":
		f.draft.Settings.ReferralBonusAmount = value
	case "referee_bonus_amount":
		f.draft.Settings.RefereeBonusAmount = value
	case "min_odds":
		f.draft.Settings.MinOdds = value
	case "min_stake":
		f.draft.Settings.MinStake = value
	case "max_refund_amount":
		f.draft.Settings.MaxRefundAmount = value
	case "refund_delay_hours":
		f.draft.Settings.RefundDelayHours = value
	case "refund_conditions":
		f.draft.Settings.RefundConditions = value
	default:
		return
	}
	f.markEditing()
}

// Tiers returns the refund tiers in edit order.
func (f *FormController) Tiers() []promotion.Tier { return f.tiers.Tiers() }

// TiersForDisplay returns the refund tiers sorted for rendering.
func (f *FormController) TiersForDisplay() []promotion.Tier { return f.tiers.DisplayOrder() }

func (f *FormController) AppendTier() {
	f.tiers.Append()
	f.markEditing()
}

func (f *FormController) RemoveTier(index int) {
	f.tiers.Remove(index)
	f.markEditing()
}

func (f *FormController) SetTierPairs(index, pairs int) {
	f.tiers.SetPairs(index, pairs)
	f.markEditing()
}

func (f *FormController) SetTierMultiplier(index int, multiplier float64) {
	f.tiers.SetMultiplier(index, multiplier)
	f.markEditing()
}

// ReplaceTiers swaps in a whole tier list, as when a submitted form body
// carries the final list rather than individual edits.
func (f *FormController) ReplaceTiers(tiers []promotion.Tier) {
	f.tiers = promotion.NewTierListEditor(tiers)
	f.markEditing()
}

// ReplaceBettingTypes swaps in a whole betting type selection. The wildcard
// rule still applies: if "all" is present it wins.
func (f *FormController) ReplaceBettingTypes(tags []string) {
	f.bettingTypes = promotion.NewSelectionSet(tags)
	f.markEditing()
}

// ReplaceMarketTypes swaps in a whole market type selection.
func (f *FormController) ReplaceMarketTypes(tags []string) {
	f.marketTypes = promotion.NewSelectionSet(tags)
	f.markEditing()
}

// BettingTypes returns the currently selected betting type tags.
func (f *FormController) BettingTypes() []string { return f.bettingTypes.Values() }

// MarketTypes returns the currently selected market type tags.
func (f *FormController) MarketTypes() []string { return f.marketTypes.Values() }

func (f *FormController) ToggleBettingType(tag string, checked bool) {
	f.bettingTypes.Toggle(tag, checked)
	f.markEditing()
}

func (f *FormController) ToggleMarketType(tag string, checked bool) {
	f.marketTypes.Toggle(tag, checked)
	f.markEditing()
}

// Submit validates the whole draft and, only if every check passes, encodes
// the settings and sends the record to the store. Validation never stops at
// the first problem; the caller gets the complete field-keyed set. A store
// failure leaves the draft exactly as entered.
func (f *FormController) Submit(ctx context.Context) (promotion.Detail, error) {
	if f.state == StateSubmitted {
		return promotion.Detail{}, ErrDraftSubmitted
	}
	f.state = StateSubmitting
	f.submitErr = nil

	errs := promotion.FieldErrors{}

	if strings.TrimSpace(f.draft.Name) == "" {
		errs.Add("name", "Name is required")
	}

	priority := parseRequiredInt(f.draft.Priority, "priority", "Priority must be a whole number", errs)
	if priority != nil && (*priority < 1 || *priority > 100) {
		errs.Add("priority", "Priority must be between 1 and 100")
	}

	startsAt, startsOK := parseTimestamp(f.draft.StartsAt)
	endsAt, endsOK := parseTimestamp(f.draft.EndsAt)
	if startsOK && endsOK && !startsAt.Before(endsAt) {
		errs.Add("ends_at", "End time must be after start time")
	}

	if f.bettingTypes.Empty() {
		errs.Add("betting_types", "At least one betting type is required")
	}

	rec := promotion.Promotion{
		Name:              strings.TrimSpace(f.draft.Name),
		Type:              f.promotionType,
		IsActive:          f.draft.IsActive,
		IsStackable:       f.draft.IsStackable,
		StartsAt:          optionalString(f.draft.StartsAt),
		EndsAt:            optionalString(f.draft.EndsAt),
		ScheduleDays:      sanitizeScheduleDays(f.draft.ScheduleDays),
		ScheduleStartTime: optionalString(f.draft.ScheduleStartTime),
		ScheduleEndTime:   optionalString(f.draft.ScheduleEndTime),
		UserLimitTotal:    parseOptionalInt(f.draft.UserLimitTotal, "user_limit_total", errs),
		UserLimitPerDay:   parseOptionalInt(f.draft.UserLimitPerDay, "user_limit_per_day", errs),
		GlobalQuota:       parseOptionalInt(f.draft.GlobalQuota, "global_quota", errs),
		GlobalBudget:      parseOptionalFloat(f.draft.GlobalBudget, "global_budget", errs),
		MaxPayoutPerBill:  parseOptionalFloat(f.draft.MaxPayoutPerBill, "max_payout_per_bill", errs),
		MaxPayoutPerDay:   parseOptionalFloat(f.draft.MaxPayoutPerDay, "max_payout_per_day", errs),
		MaxPayoutPerUser:  parseOptionalFloat(f.draft.MaxPayoutPerUser, "max_payout_per_user", errs),
	}
	if priority != nil {
		rec.Priority = *priority
	}

	settings := f.collectSettings(errs)
	errs.Merge(promotion.ValidateSettings(f.promotionType, settings))

	if len(errs) > 0 {
		f.state = StateEditingWithError
		f.fieldErrors = errs
		return promotion.Detail{}, &promotion.ValidationError{Fields: errs}
	}
	f.fieldErrors = nil

	rec.Settings = promotion.EncodeSettings(f.promotionType, settings)

	var (
		stored promotion.Promotion
		err    error
	)
	if f.editID != nil {
		stored, err = f.processor.store.UpdatePromotion(ctx, *f.editID, rec)
	} else {
		stored, err = f.processor.store.CreatePromotion(ctx, rec)
	}
	if err != nil {
		f.state = StateEditingWithError
		f.submitErr = ErrStoreRequest
		f.processor.logger.Error(ctx, "failed to save promotion", err)
		return promotion.Detail{}, ErrStoreRequest
	}

	f.state = StateSubmitted
	f.processor.logger.Info(ctx, "promotion saved")
	return f.processor.decode(stored), nil
}

// collectSettings parses the type-specific fields into structured settings,
// recording parse failures. Range checks are left to ValidateSettings.
func (f *FormController) collectSettings(errs promotion.FieldErrors) promotion.Settings {
	d := f.draft.Settings
	s := promotion.Settings{
		BettingTypes: f.bettingTypes.Values(),
	}

	switch f.promotionType {
	case promotion.TypeWelcomeBonus:
		s.BonusPercentage = parseOptionalFloat(d.BonusPercentage, "bonus_percentage", errs)
	case promotion.TypeCashback:
		s.CashbackPercentage = parseOptionalFloat(d.CashbackPercentage, "cashback_percentage", errs)
	case promotion.TypeWeekendBonus:
		s.BonusMultiplier = parseOptionalFloat(d.BonusMultiplier, "bonus_multiplier", errs)
	case promotion.TypeDepositBonus:
		s.DepositBonusPercentage = parseOptionalFloat(d.DepositBonusPercentage, "deposit_bonus_percentage", errs)
		s.MinDeposit = parseOptionalFloat(d.MinDeposit, "min_deposit", errs)
	case promotion.TypeReferralBonus:
		s.ReferralBonusAmount = parseOptionalFloat(d.ReferralBonusAmount, "referral_bonus_amount", errs)
		s.RefereeBonusAmount = parseOptionalFloat(d.RefereeBonusAmount, "referee_bonus_amount", errs)
	case promotion.TypeLoseAllRefund:
		s.Tiers = f.tiers.Tiers()
		s.MarketTypes = f.marketTypes.Values()
		s.MinOdds = parseOptionalFloat(d.MinOdds, "min_odds", errs)
		s.MinStake = parseOptionalFloat(d.MinStake, "min_stake", errs)
		s.MaxRefundAmount = parseOptionalFloat(d.MaxRefundAmount, "max_refund_amount", errs)
		s.RefundDelayHours = parseOptionalInt(d.RefundDelayHours, "refund_delay_hours", errs)
		s.RefundConditions = optionalString(d.RefundConditions)
		s.RequiredLossPairs = f.legacyLossPairs
		s.RefundAmount = f.legacyRefundAmount
	}
	return s
}

// timestampLayouts covers the console's datetime-local inputs plus what the
// store emits.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sanitizeScheduleDays keeps weekday numbers 1 through 7 and drops the rest.
// An empty result means no schedule restriction.
func sanitizeScheduleDays(days []int) []int {
	var kept []int
	for _, d := range days {
		if d >= 1 && d <= 7 {
			kept = append(kept, d)
		}
	}
	return kept
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseRequiredInt(v, key, message string, errs promotion.FieldErrors) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		errs.Add(key, message)
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		errs.Add(key, message)
		return nil
	}
	return &n
}

func parseOptionalInt(v, key string, errs promotion.FieldErrors) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		errs.Add(key, "Must be a whole number")
		return nil
	}
	return &n
}

func parseOptionalFloat(v, key string, errs promotion.FieldErrors) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		errs.Add(key, "Must be a number")
		return nil
	}
	return &n
}
