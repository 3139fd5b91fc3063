package domain

// PaymentInput is the request shape for a standalone payment calculation.
type PaymentInput struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermYears  int     `json:"term_years"`
}

type PaymentResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// ScheduleInput is the request shape for a single simulated schedule.
type ScheduleInput struct {
	Terms    LoanTerms       `json:"terms"`
	Strategy PaymentStrategy `json:"strategy"`
}

// RefinancePlanInput holds every parameter of a refinance scenario. A
// RefinanceMonth of 0 means the refinance happens at the lump-sum month,
// which is how the original planner behaved.
type RefinancePlanInput struct {
	Principal      float64 `json:"principal"`
	RateBefore     float64 `json:"rate_before"`
	RateAfter      float64 `json:"rate_after"`
	TermYears      int     `json:"term_years"`
	ExtraBefore    float64 `json:"extra_before"`
	ExtraAfter     float64 `json:"extra_after"`
	LumpSumMonth   int     `json:"lump_sum_month"`
	LumpSumAmount  float64 `json:"lump_sum_amount"`
	RefinanceMonth int     `json:"refinance_month,omitempty"`
}

// RefinancePlanResult carries the four series the presentation layer charts,
// plus the headline payment figures. Cumulative totals are continuous across
// the pre/post refinance boundary.
type RefinancePlanResult struct {
	OriginalPayment       float64  `json:"original_payment"`
	RefinancePayment      float64  `json:"refinance_payment"`
	RefinancePaymentExtra float64  `json:"refinance_payment_extra"`
	Original              Schedule `json:"original"`
	PreRefinance          Schedule `json:"pre_refi_with_extras"`
	PostRefinanceStd      Schedule `json:"post_refi_std"`
	PostRefinanceExtra    Schedule `json:"post_refi_extra"`
	Explanation           string   `json:"explanation,omitempty"`
}
