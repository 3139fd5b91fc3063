// Package amortization implements the month-by-month simulation engine for
// fixed-rate loans: the closed-form standard payment, plain and
// extra-principal schedules, and refinance continuations that stitch onto a
// prior schedule. Every function is pure: all parameters are explicit and
// nothing is shared between calls.
package amortization

import (
	"errors"
	"math"
)

// StandardPayment returns the fixed monthly payment that fully amortizes
// principal over years*12 equal installments at a monthly rate of
// annualRate/12. The annuity formula degenerates at a zero rate, so that
// case falls back to straight-line principal/n.
func StandardPayment(principal, annualRate, years float64) (float64, error) {
	if err := validateTerms(principal, annualRate, years); err != nil {
		return 0, err
	}

	n := years * 12
	if annualRate == 0 {
		return principal / n, nil
	}

	monthlyRate := annualRate / 12
	return monthlyRate * principal / (1 - math.Pow(1+monthlyRate, -n)), nil
}

func validateTerms(principal, annualRate, years float64) error {
	if principal <= 0 {
		return errors.New("principal must be positive")
	}
	if annualRate < 0 || annualRate >= 1 {
		return errors.New("annual rate must be a fraction in [0, 1)")
	}
	if years <= 0 {
		return errors.New("term must be positive")
	}
	return nil
}
