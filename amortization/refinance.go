package amortization

import (
	"errors"

	"mortgage-planner/domain"
)

// Continue re-runs the amortization recurrence on a carried-over balance
// with a caller-supplied fixed payment. Month numbers are offset by the
// transition month and cumulative totals start at the supplied offsets, so
// the result lines up gaplessly behind whatever schedule preceded it.
//
// A zero carry balance means the loan was paid off before the transition;
// the continuation is an empty schedule. The iteration bound is
// int(remainingYears*12): a fractional remaining term truncates to whole
// months, matching the original planner.
func Continue(c domain.Continuation) (domain.Schedule, error) {
	if err := validateContinuation(c); err != nil {
		return nil, err
	}
	if c.CarryBalance == 0 {
		return domain.Schedule{}, nil
	}

	n := int(c.RemainingYears * 12)
	if n <= 0 {
		return domain.Schedule{}, nil
	}

	monthlyRate := c.AnnualRate / 12
	schedule := make(domain.Schedule, 0, n)
	balance := c.CarryBalance
	cumInterest := c.CumInterestStart
	cumPayment := c.CumPaymentStart

	for m := 1; m <= n; m++ {
		interest := balance * monthlyRate
		principalPaid := c.MonthlyPayment - interest
		paid := c.MonthlyPayment
		if principalPaid > balance {
			principalPaid = balance
			paid = interest + principalPaid
		}
		balance -= principalPaid
		if balance < 0 {
			balance = 0
		}
		cumInterest += interest
		cumPayment += paid

		schedule = append(schedule, domain.MonthRecord{
			Month:              c.TransitionMonth + m,
			Interest:           interest,
			ScheduledPrincipal: principalPaid,
			Payment:            paid,
			Balance:            balance,
			CumulativeInterest: cumInterest,
			CumulativePayment:  cumPayment,
		})

		if balance <= 0 {
			break
		}
	}

	return schedule, nil
}

func validateContinuation(c domain.Continuation) error {
	if c.CarryBalance < 0 {
		return errors.New("carry balance must not be negative")
	}
	if c.AnnualRate < 0 || c.AnnualRate >= 1 {
		return errors.New("annual rate must be a fraction in [0, 1)")
	}
	if c.MonthlyPayment < 0 {
		return errors.New("monthly payment must not be negative")
	}
	if c.TransitionMonth < 0 {
		return errors.New("transition month must not be negative")
	}
	return nil
}
