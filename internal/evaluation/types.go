package evaluation

// Selection is one hypothetical settlement outcome in a trial evaluation.
type Selection struct {
	Sport  string  `json:"sport"`
	Result string  `json:"result"`
	Market string  `json:"market"`
	Period string  `json:"period"`
	Odds   float64 `json:"odds"`
}

// Request is the trial-evaluation payload sent to the evaluation service.
type Request struct {
	Stake       float64     `json:"stake"`
	PromotionID int64       `json:"promotion_id"`
	Selections  []Selection `json:"selections"`
}

// Caps lists the payout limits that were in effect during an evaluation.
// Absent means unlimited.
type Caps struct {
	MaxPayoutPerBill *float64 `json:"maxPayoutPerBill,omitempty"`
	MaxPayoutPerDay  *float64 `json:"maxPayoutPerDay,omitempty"`
	MaxPayoutPerUser *float64 `json:"maxPayoutPerUser,omitempty"`
}

// PromotionRef identifies the promotion an evaluation ran against.
type PromotionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Result is the structured outcome of a trial evaluation, passed through to
// the console untouched. Both refund figures are exposed raw; any derived
// bonus amount is left to the evaluation service's own semantics.
type Result struct {
	Eligible        bool         `json:"eligible"`
	Multiplier      float64      `json:"multiplier"`
	SelectionsCount int          `json:"selectionsCount"`
	Stake           float64      `json:"stake"`
	ComputedRefund  float64      `json:"computedRefund"`
	CappedRefund    float64      `json:"cappedRefund"`
	Caps            *Caps        `json:"caps,omitempty"`
	Reasons         []string     `json:"reasons,omitempty"`
	Promotion       PromotionRef `json:"promotion"`
	Message         string       `json:"message,omitempty"`
}
