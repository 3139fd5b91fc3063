package amortization

import (
	"math"
	"testing"

	"mortgage-planner/domain"
)

func TestBaseline_MatchesStandardPayment(t *testing.T) {
	terms := domain.LoanTerms{Principal: 250000, AnnualRate: 0.05, TermYears: 30}

	payment, err := StandardPayment(terms.Principal, terms.AnnualRate, float64(terms.TermYears))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	schedule, err := Baseline(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(schedule) != 360 {
		t.Fatalf("expected 360 months, got %d", len(schedule))
	}
	for _, rec := range schedule {
		if math.Abs(rec.Payment-payment) > payment*1e-6 {
			t.Fatalf("month %d: payment %.6f deviates from standard %.6f", rec.Month, rec.Payment, payment)
		}
	}

	last := schedule[len(schedule)-1]
	if last.Balance != 0 {
		t.Errorf("expected final balance 0, got %g", last.Balance)
	}
	wantTotal := payment * 360
	if math.Abs(last.CumulativePayment-wantTotal) > wantTotal*1e-6 {
		t.Errorf("expected cumulative payment ~%.2f, got %.2f", wantTotal, last.CumulativePayment)
	}
}

func TestBaseline_BalanceMonotonicity(t *testing.T) {
	schedule, err := Baseline(domain.LoanTerms{Principal: 300000, AnnualRate: 0.045, TermYears: 15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := math.Inf(1)
	for _, rec := range schedule {
		if rec.Balance > prev {
			t.Fatalf("month %d: balance %.6f increased from %.6f", rec.Month, rec.Balance, prev)
		}
		if rec.Balance == prev && rec.Balance != 0 {
			t.Fatalf("month %d: balance stalled at %.6f before payoff", rec.Month, rec.Balance)
		}
		prev = rec.Balance
	}
}

func TestBaseline_ZeroRate(t *testing.T) {
	schedule, err := Baseline(domain.LoanTerms{Principal: 120000, AnnualRate: 0, TermYears: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(schedule) != 120 {
		t.Fatalf("expected 120 months, got %d", len(schedule))
	}
	for _, rec := range schedule {
		if rec.Interest != 0 {
			t.Fatalf("month %d: expected zero interest, got %g", rec.Month, rec.Interest)
		}
	}
	if last, _ := schedule.Last(); last.Balance != 0 {
		t.Errorf("expected final balance 0, got %g", last.Balance)
	}
}

func TestWithPayoffs_ZeroStrategyMatchesBaseline(t *testing.T) {
	terms := domain.LoanTerms{Principal: 400000, AnnualRate: 0.0427, TermYears: 24}

	baseline, err := Baseline(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withZero, err := WithPayoffs(terms, domain.PaymentStrategy{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(withZero) != len(baseline) {
		t.Fatalf("expected %d months, got %d", len(baseline), len(withZero))
	}
	for i := range baseline {
		if math.Abs(withZero[i].Balance-baseline[i].Balance) > 1e-6 {
			t.Fatalf("month %d: balance %.8f != baseline %.8f", i+1, withZero[i].Balance, baseline[i].Balance)
		}
		if withZero[i].ExtraPrincipal != 0 {
			t.Fatalf("month %d: unexpected extra principal %g", i+1, withZero[i].ExtraPrincipal)
		}
	}
}

func TestWithPayoffs_ConcreteScenario(t *testing.T) {
	terms := domain.LoanTerms{Principal: 580000, AnnualRate: 0.0427, TermYears: 24}
	strategy := domain.PaymentStrategy{
		MonthlyExtra:  500,
		LumpSumMonth:  1,
		LumpSumAmount: 300000,
	}

	schedule, err := WithPayoffs(terms, strategy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := schedule[0]
	wantBalance := terms.Principal - (first.ScheduledPrincipal + 500 + 300000)
	if math.Abs(first.Balance-wantBalance) > 1e-6 {
		t.Errorf("month 1: balance %.4f, want %.4f", first.Balance, wantBalance)
	}
	if len(schedule) >= 24*12 {
		t.Errorf("expected payoff well under %d months, got %d", 24*12, len(schedule))
	}
}

func TestWithPayoffs_LumpSumPayoffClampsAtMonth(t *testing.T) {
	terms := domain.LoanTerms{Principal: 200000, AnnualRate: 0.05, TermYears: 30}
	strategy := domain.PaymentStrategy{LumpSumMonth: 3, LumpSumAmount: 500000}

	schedule, err := WithPayoffs(terms, strategy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(schedule) != 3 {
		t.Fatalf("expected exactly 3 months, got %d", len(schedule))
	}
	last := schedule[2]
	if last.Balance != 0 {
		t.Errorf("expected final balance 0, got %g", last.Balance)
	}
	// the reported split never exceeds the principal actually paid
	if last.ScheduledPrincipal+last.ExtraPrincipal > schedule[1].Balance+1e-9 {
		t.Errorf("clamped principal %.4f exceeds prior balance %.4f",
			last.ScheduledPrincipal+last.ExtraPrincipal, schedule[1].Balance)
	}
	if last.Payment >= 500000 {
		t.Errorf("final payment %.2f should be clamped below the nominal lump sum", last.Payment)
	}
}

func TestWithPayoffs_ExtraNeverLengthensSchedule(t *testing.T) {
	terms := domain.LoanTerms{Principal: 350000, AnnualRate: 0.04, TermYears: 20}

	baseline, err := Baseline(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, extra := range []float64{0, 100, 500, 2500} {
		schedule, err := WithPayoffs(terms, domain.PaymentStrategy{MonthlyExtra: extra})
		if err != nil {
			t.Fatalf("extra %.0f: unexpected error: %v", extra, err)
		}
		if len(schedule) > len(baseline) {
			t.Errorf("extra %.0f: schedule length %d exceeds baseline %d", extra, len(schedule), len(baseline))
		}
	}
}

func TestWithPayoffs_LumpSumMonthOutOfRangeIsInert(t *testing.T) {
	terms := domain.LoanTerms{Principal: 150000, AnnualRate: 0.035, TermYears: 10}

	plain, err := WithPayoffs(terms, domain.PaymentStrategy{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outOfRange, err := WithPayoffs(terms, domain.PaymentStrategy{LumpSumMonth: 500, LumpSumAmount: 50000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outOfRange) != len(plain) {
		t.Errorf("expected inert lump sum, lengths %d != %d", len(outOfRange), len(plain))
	}
}

func TestWithPayoffs_InvalidStrategy(t *testing.T) {
	terms := domain.LoanTerms{Principal: 100000, AnnualRate: 0.05, TermYears: 10}

	tests := []struct {
		name     string
		strategy domain.PaymentStrategy
	}{
		{"negative extra", domain.PaymentStrategy{MonthlyExtra: -1}},
		{"negative lump sum", domain.PaymentStrategy{LumpSumMonth: 1, LumpSumAmount: -100}},
		{"negative lump month", domain.PaymentStrategy{LumpSumMonth: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := WithPayoffs(terms, tt.strategy); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}
