package domain

// LoanTerms describes a fixed-rate, fixed-term loan. Immutable once a
// simulation starts.
type LoanTerms struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"` // nominal annual rate as a fraction, e.g. 0.0427
	TermYears  int     `json:"term_years"`
}

// PaymentStrategy governs deviations from the scheduled payment: a recurring
// monthly extra and at most one lump sum. A LumpSumMonth of 0 means no lump sum.
type PaymentStrategy struct {
	MonthlyExtra  float64 `json:"monthly_extra"`
	LumpSumMonth  int     `json:"lump_sum_month"`
	LumpSumAmount float64 `json:"lump_sum_amount"`
}

// MonthRecord is one simulated month. Month numbering is global: it keeps
// increasing across a refinance transition.
type MonthRecord struct {
	Month              int     `json:"month"`
	Interest           float64 `json:"interest"`
	ScheduledPrincipal float64 `json:"scheduled_principal"`
	ExtraPrincipal     float64 `json:"extra_principal"`
	Payment            float64 `json:"payment"`
	Balance            float64 `json:"balance"` // closing balance, never negative
	CumulativeInterest float64 `json:"cumulative_interest"`
	CumulativePayment  float64 `json:"cumulative_payment"`
}

// Schedule is an ordered run of months from origination (or a refinance
// point) to payoff. No record exists after the month the balance first
// reaches zero.
type Schedule []MonthRecord

// Last returns the final record of the schedule, if any.
func (s Schedule) Last() (MonthRecord, bool) {
	if len(s) == 0 {
		return MonthRecord{}, false
	}
	return s[len(s)-1], true
}

// Continuation restarts amortization on a carried-over balance at a new
// rate, with month numbering and cumulative totals stitched onto a prior
// schedule. MonthlyPayment is taken as-is; any extra amount the caller wants
// is already baked into it.
type Continuation struct {
	CarryBalance     float64 `json:"carry_balance"`
	AnnualRate       float64 `json:"annual_rate"`
	RemainingYears   float64 `json:"remaining_years"` // may be fractional
	MonthlyPayment   float64 `json:"monthly_payment"`
	TransitionMonth  int     `json:"transition_month"`
	CumInterestStart float64 `json:"cum_interest_start"`
	CumPaymentStart  float64 `json:"cum_payment_start"`
}
