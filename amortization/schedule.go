package amortization

import (
	"errors"

	"mortgage-planner/domain"
)

// Baseline simulates the plain schedule: the standard payment every month,
// no extras. When the scheduled payment overshoots what is owed in the final
// month, the whole payment is clamped to interest plus the remaining balance.
func Baseline(terms domain.LoanTerms) (domain.Schedule, error) {
	payment, err := StandardPayment(terms.Principal, terms.AnnualRate, float64(terms.TermYears))
	if err != nil {
		return nil, err
	}

	monthlyRate := terms.AnnualRate / 12
	maxMonths := terms.TermYears * 12

	schedule := make(domain.Schedule, 0, maxMonths)
	balance := terms.Principal
	var cumInterest, cumPayment float64

	for m := 1; m <= maxMonths; m++ {
		interest := balance * monthlyRate
		principalPaid := payment - interest
		paid := payment
		if principalPaid > balance {
			principalPaid = balance
			paid = interest + principalPaid
		}
		if m == maxMonths && principalPaid < balance {
			// the standard payment zeroes the balance exactly in theory;
			// absorb any floating-point residue into the final month
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
			Month:              m,
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

// WithPayoffs simulates a schedule with a recurring monthly extra and an
// optional one-time lump sum. The clamp rule differs from Baseline: when the
// combined principal overshoots the balance, the total is clamped and then
// re-split so the reported scheduled portion never exceeds the principal
// actually paid, with the remainder attributed to the extra. The split is
// observable by callers, so the two paths stay separate.
//
// A lump-sum month outside the loan term is inert. A zero strategy reduces
// to the Baseline schedule.
func WithPayoffs(terms domain.LoanTerms, strategy domain.PaymentStrategy) (domain.Schedule, error) {
	if err := validateStrategy(strategy); err != nil {
		return nil, err
	}
	payment, err := StandardPayment(terms.Principal, terms.AnnualRate, float64(terms.TermYears))
	if err != nil {
		return nil, err
	}

	monthlyRate := terms.AnnualRate / 12
	maxMonths := terms.TermYears * 12

	schedule := make(domain.Schedule, 0, maxMonths)
	balance := terms.Principal
	var cumInterest, cumPayment float64

	for m := 1; m <= maxMonths; m++ {
		interest := balance * monthlyRate
		scheduled := payment - interest
		extra := strategy.MonthlyExtra
		if m == strategy.LumpSumMonth {
			extra += strategy.LumpSumAmount
		}

		totalPrincipal := scheduled + extra
		if totalPrincipal > balance {
			totalPrincipal = balance
			if scheduled > totalPrincipal {
				scheduled = totalPrincipal
			}
			extra = totalPrincipal - scheduled
		}
		if m == maxMonths && totalPrincipal < balance {
			// absorb floating-point residue into the final scheduled portion
			totalPrincipal = balance
			scheduled = totalPrincipal - extra
		}
		paid := interest + totalPrincipal

		balance -= totalPrincipal
		if balance < 0 {
			balance = 0
		}
		cumInterest += interest
		cumPayment += paid

		schedule = append(schedule, domain.MonthRecord{
			Month:              m,
			Interest:           interest,
			ScheduledPrincipal: scheduled,
			ExtraPrincipal:     extra,
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

func validateStrategy(strategy domain.PaymentStrategy) error {
	if strategy.MonthlyExtra < 0 {
		return errors.New("monthly extra must not be negative")
	}
	if strategy.LumpSumAmount < 0 {
		return errors.New("lump sum amount must not be negative")
	}
	if strategy.LumpSumMonth < 0 {
		return errors.New("lump sum month must not be negative")
	}
	return nil
}
