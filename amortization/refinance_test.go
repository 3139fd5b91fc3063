package amortization

import (
	"math"
	"testing"

	"mortgage-planner/domain"
)

func TestContinue_StitchContinuity(t *testing.T) {
	terms := domain.LoanTerms{Principal: 300000, AnnualRate: 0.0427, TermYears: 24}
	strategy := domain.PaymentStrategy{MonthlyExtra: 500, LumpSumMonth: 12, LumpSumAmount: 50000}

	pre, err := WithPayoffs(terms, strategy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transition := 12
	snap := pre[transition-1]
	remainingYears := float64(terms.TermYears) - float64(transition)/12

	newPayment, err := StandardPayment(snap.Balance, 0.0477, remainingYears)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	post, err := Continue(domain.Continuation{
		CarryBalance:     snap.Balance,
		AnnualRate:       0.0477,
		RemainingYears:   remainingYears,
		MonthlyPayment:   newPayment,
		TransitionMonth:  transition,
		CumInterestStart: snap.CumulativeInterest,
		CumPaymentStart:  snap.CumulativePayment,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(post) == 0 {
		t.Fatal("expected a non-empty continuation")
	}

	first := post[0]
	if first.Month != transition+1 {
		t.Errorf("expected first month %d, got %d", transition+1, first.Month)
	}
	if first.CumulativeInterest <= snap.CumulativeInterest {
		t.Errorf("cumulative interest %.4f did not advance past offset %.4f",
			first.CumulativeInterest, snap.CumulativeInterest)
	}
	if first.CumulativePayment <= snap.CumulativePayment {
		t.Errorf("cumulative payment %.4f did not advance past offset %.4f",
			first.CumulativePayment, snap.CumulativePayment)
	}

	for i := 1; i < len(post); i++ {
		if post[i].Month != post[i-1].Month+1 {
			t.Fatalf("month numbering gap at index %d", i)
		}
		if post[i].Balance > post[i-1].Balance {
			t.Fatalf("balance increased at month %d", post[i].Month)
		}
		if post[i].CumulativeInterest < post[i-1].CumulativeInterest {
			t.Fatalf("cumulative interest decreased at month %d", post[i].Month)
		}
	}
}

func TestContinue_ZeroCarryIsNoOp(t *testing.T) {
	post, err := Continue(domain.Continuation{
		CarryBalance:    0,
		AnnualRate:      0.05,
		RemainingYears:  10,
		MonthlyPayment:  1000,
		TransitionMonth: 24,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(post) != 0 {
		t.Errorf("expected empty schedule, got %d records", len(post))
	}
}

func TestContinue_TruncatesFractionalTerm(t *testing.T) {
	// 10.5 remaining years bounds the loop at 126 months; a payment sized
	// for exactly that many months pays off on the last one.
	post, err := Continue(domain.Continuation{
		CarryBalance:    126000,
		AnnualRate:      0,
		RemainingYears:  10.5,
		MonthlyPayment:  1000,
		TransitionMonth: 6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(post) != 126 {
		t.Fatalf("expected 126 months, got %d", len(post))
	}
	last := post[len(post)-1]
	if last.Balance != 0 {
		t.Errorf("expected final balance 0, got %g", last.Balance)
	}
	if last.Month != 6+126 {
		t.Errorf("expected final month %d, got %d", 6+126, last.Month)
	}
}

func TestContinue_ClampsFinalPayment(t *testing.T) {
	post, err := Continue(domain.Continuation{
		CarryBalance:    1000,
		AnnualRate:      0,
		RemainingYears:  1,
		MonthlyPayment:  400,
		TransitionMonth: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(post) != 3 {
		t.Fatalf("expected 3 months, got %d", len(post))
	}
	if math.Abs(post[2].Payment-200) > 1e-9 {
		t.Errorf("expected clamped final payment 200, got %.4f", post[2].Payment)
	}
	if post[2].Balance != 0 {
		t.Errorf("expected final balance 0, got %g", post[2].Balance)
	}
}

func TestContinue_ImmediatePayoff(t *testing.T) {
	post, err := Continue(domain.Continuation{
		CarryBalance:    5000,
		AnnualRate:      0.05,
		RemainingYears:  5,
		MonthlyPayment:  100000,
		TransitionMonth: 36,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(post) != 1 {
		t.Fatalf("expected a single record, got %d", len(post))
	}
	if post[0].Month != 37 {
		t.Errorf("expected month 37, got %d", post[0].Month)
	}
	if post[0].Balance != 0 {
		t.Errorf("expected balance 0, got %g", post[0].Balance)
	}
}

func TestContinue_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		c    domain.Continuation
	}{
		{"negative carry", domain.Continuation{CarryBalance: -1, RemainingYears: 1, MonthlyPayment: 100}},
		{"rate of one", domain.Continuation{CarryBalance: 1000, AnnualRate: 1, RemainingYears: 1, MonthlyPayment: 100}},
		{"negative payment", domain.Continuation{CarryBalance: 1000, RemainingYears: 1, MonthlyPayment: -5}},
		{"negative transition", domain.Continuation{CarryBalance: 1000, RemainingYears: 1, MonthlyPayment: 100, TransitionMonth: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Continue(tt.c); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}
