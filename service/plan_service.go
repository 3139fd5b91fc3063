package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"mortgage-planner/amortization"
	"mortgage-planner/domain"
	"mortgage-planner/metrics"
	"mortgage-planner/repository"
	"mortgage-planner/tracing"
)

// roundTo2Decimals rounds a float64 to 2 decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type PlanService struct {
	repo  repository.PlanRepository
	cache repository.CacheRepository
	ai    *AIService
}

// NewPlanService creates a PlanService backed by the given history
// repository and plan cache.
func NewPlanService(repo repository.PlanRepository,
	cache repository.CacheRepository,
) *PlanService {
	return &PlanService{repo: repo, cache: cache, ai: NewAIService()}
}

// CalculatePayment computes the standard monthly payment for the given terms
// plus the total-payment and total-interest summary.
func (s *PlanService) CalculatePayment(
	ctx context.Context,
	input domain.PaymentInput,
) (domain.PaymentResult, error) {
	_, span := tracing.Start(ctx, "plan.calculate_payment")
	defer span.End()

	if input.Principal > MaxPrincipal {
		metrics.Calculations.WithLabelValues("payment", "invalid").Inc()
		return domain.PaymentResult{}, fmt.Errorf("principal exceeds the maximum of $%.2f", MaxPrincipal)
	}
	if input.TermYears > MaxTermYears {
		metrics.Calculations.WithLabelValues("payment", "invalid").Inc()
		return domain.PaymentResult{}, fmt.Errorf("term exceeds the maximum of %d years", MaxTermYears)
	}

	payment, err := amortization.StandardPayment(input.Principal, input.AnnualRate, float64(input.TermYears))
	if err != nil {
		metrics.Calculations.WithLabelValues("payment", "invalid").Inc()
		return domain.PaymentResult{}, err
	}

	total := payment * float64(input.TermYears*12)
	metrics.Calculations.WithLabelValues("payment", "ok").Inc()

	return domain.PaymentResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - input.Principal),
	}, nil
}

// SimulateSchedule runs one amortization schedule for the given terms and
// strategy.
func (s *PlanService) SimulateSchedule(
	ctx context.Context,
	input domain.ScheduleInput,
) (domain.Schedule, error) {
	_, span := tracing.Start(ctx, "plan.simulate_schedule")
	defer span.End()

	if err := validateTermLimits(input.Terms); err != nil {
		metrics.Calculations.WithLabelValues("schedule", "invalid").Inc()
		return nil, err
	}
	if err := validateStrategyLimits(input.Strategy); err != nil {
		metrics.Calculations.WithLabelValues("schedule", "invalid").Inc()
		return nil, err
	}

	schedule, err := amortization.WithPayoffs(input.Terms, input.Strategy)
	if err != nil {
		metrics.Calculations.WithLabelValues("schedule", "invalid").Inc()
		return nil, err
	}
	metrics.Calculations.WithLabelValues("schedule", "ok").Inc()
	return schedule, nil
}

// BuildRefinancePlan computes the four series of a refinance scenario: the
// original schedule, the pre-refinance schedule with extras, and the two
// post-refinance continuations (standard payment, standard plus extra).
// Results are cached by input and stored in the plan history.
func (s *PlanService) BuildRefinancePlan(
	ctx context.Context,
	input domain.RefinancePlanInput,
) (domain.RefinancePlanResult, error) {
	ctx, span := tracing.Start(ctx, "plan.build_refinance")
	defer span.End()

	refiMonth, err := validatePlanInput(input)
	if err != nil {
		metrics.Calculations.WithLabelValues("refinance_plan", "invalid").Inc()
		return domain.RefinancePlanResult{}, err
	}

	key := planCacheKey(input)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached domain.RefinancePlanResult
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := time.Now()

	terms := domain.LoanTerms{
		Principal:  input.Principal,
		AnnualRate: input.RateBefore,
		TermYears:  input.TermYears,
	}
	strategy := domain.PaymentStrategy{
		MonthlyExtra:  input.ExtraBefore,
		LumpSumMonth:  input.LumpSumMonth,
		LumpSumAmount: input.LumpSumAmount,
	}

	originalPayment, err := amortization.StandardPayment(terms.Principal, terms.AnnualRate, float64(terms.TermYears))
	if err != nil {
		metrics.Calculations.WithLabelValues("refinance_plan", "invalid").Inc()
		return domain.RefinancePlanResult{}, err
	}
	original, err := amortization.Baseline(terms)
	if err != nil {
		metrics.Calculations.WithLabelValues("refinance_plan", "invalid").Inc()
		return domain.RefinancePlanResult{}, err
	}
	preRefi, err := amortization.WithPayoffs(terms, strategy)
	if err != nil {
		metrics.Calculations.WithLabelValues("refinance_plan", "invalid").Inc()
		return domain.RefinancePlanResult{}, err
	}

	result := domain.RefinancePlanResult{
		OriginalPayment:    roundTo2Decimals(originalPayment),
		Original:           original,
		PreRefinance:       preRefi,
		PostRefinanceStd:   domain.Schedule{},
		PostRefinanceExtra: domain.Schedule{},
	}

	carry, cumInterest, cumPayment := snapshotAt(preRefi, refiMonth)
	remainingYears := float64(input.TermYears) - float64(refiMonth)/12

	// carry == 0 means the loan pays off on or before the refinance month;
	// the refinance is a no-op and both continuations stay empty.
	if carry > 0 && remainingYears > 0 {
		newPayment, err := amortization.StandardPayment(carry, input.RateAfter, remainingYears)
		if err != nil {
			metrics.Calculations.WithLabelValues("refinance_plan", "invalid").Inc()
			return domain.RefinancePlanResult{}, err
		}

		postStd, err := amortization.Continue(domain.Continuation{
			CarryBalance:     carry,
			AnnualRate:       input.RateAfter,
			RemainingYears:   remainingYears,
			MonthlyPayment:   newPayment,
			TransitionMonth:  refiMonth,
			CumInterestStart: cumInterest,
			CumPaymentStart:  cumPayment,
		})
		if err != nil {
			metrics.Calculations.WithLabelValues("refinance_plan", "invalid").Inc()
			return domain.RefinancePlanResult{}, err
		}
		postExtra, err := amortization.Continue(domain.Continuation{
			CarryBalance:     carry,
			AnnualRate:       input.RateAfter,
			RemainingYears:   remainingYears,
			MonthlyPayment:   newPayment + input.ExtraAfter,
			TransitionMonth:  refiMonth,
			CumInterestStart: cumInterest,
			CumPaymentStart:  cumPayment,
		})
		if err != nil {
			metrics.Calculations.WithLabelValues("refinance_plan", "invalid").Inc()
			return domain.RefinancePlanResult{}, err
		}

		result.RefinancePayment = roundTo2Decimals(newPayment)
		result.RefinancePaymentExtra = roundTo2Decimals(newPayment + input.ExtraAfter)
		result.PostRefinanceStd = postStd
		result.PostRefinanceExtra = postExtra
	}

	result.Explanation = s.ai.GeneratePlanExplanation(input, result)

	metrics.CalculationDuration.WithLabelValues("refinance_plan").Observe(time.Since(start).Seconds())
	metrics.Calculations.WithLabelValues("refinance_plan", "ok").Inc()

	if raw, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(raw)); err != nil {
			log.Printf("Warning: failed to cache refinance plan: %v", err)
		}
	}
	if err := s.repo.Save(ctx, input, result); err != nil {
		log.Printf("Warning: failed to save refinance plan: %v", err)
	}

	return result, nil
}

// snapshotAt reads the balance and cumulative totals at the transition
// month. When the schedule ended before that month the loan is already paid
// off: the carry balance is zero and the final totals carry forward.
func snapshotAt(schedule domain.Schedule, month int) (balance, cumInterest, cumPayment float64) {
	if len(schedule) == 0 {
		return 0, 0, 0
	}
	if month <= len(schedule) {
		rec := schedule[month-1]
		return rec.Balance, rec.CumulativeInterest, rec.CumulativePayment
	}
	last := schedule[len(schedule)-1]
	return 0, last.CumulativeInterest, last.CumulativePayment
}

// validatePlanInput checks the plan parameters and resolves the effective
// refinance month (falling back to the lump-sum month when not set).
func validatePlanInput(input domain.RefinancePlanInput) (int, error) {
	terms := domain.LoanTerms{
		Principal:  input.Principal,
		AnnualRate: input.RateBefore,
		TermYears:  input.TermYears,
	}
	if err := validateTermLimits(terms); err != nil {
		return 0, err
	}
	if input.RateAfter < 0 || input.RateAfter >= 1 {
		return 0, errors.New("refinance rate must be a fraction in [0, 1)")
	}
	if input.ExtraBefore < 0 || input.ExtraAfter < 0 {
		return 0, errors.New("monthly extra must not be negative")
	}
	if input.ExtraBefore > MaxMonthlyExtra || input.ExtraAfter > MaxMonthlyExtra {
		return 0, fmt.Errorf("monthly extra exceeds the maximum of $%.2f", MaxMonthlyExtra)
	}
	if err := validateStrategyLimits(domain.PaymentStrategy{
		MonthlyExtra:  input.ExtraBefore,
		LumpSumMonth:  input.LumpSumMonth,
		LumpSumAmount: input.LumpSumAmount,
	}); err != nil {
		return 0, err
	}

	refiMonth := input.RefinanceMonth
	if refiMonth == 0 {
		refiMonth = input.LumpSumMonth
	}
	if refiMonth < 1 {
		return 0, errors.New("refinance month must be at least 1")
	}
	if refiMonth > input.TermYears*12 {
		return 0, errors.New("refinance month is beyond the loan term")
	}
	return refiMonth, nil
}

func validateTermLimits(terms domain.LoanTerms) error {
	if terms.Principal <= 0 {
		return errors.New("principal must be positive")
	}
	if terms.Principal > MaxPrincipal {
		return fmt.Errorf("principal exceeds the maximum of $%.2f", MaxPrincipal)
	}
	if terms.AnnualRate < 0 || terms.AnnualRate >= 1 {
		return errors.New("annual rate must be a fraction in [0, 1)")
	}
	if terms.TermYears <= 0 {
		return errors.New("term must be positive")
	}
	if terms.TermYears > MaxTermYears {
		return fmt.Errorf("term exceeds the maximum of %d years", MaxTermYears)
	}
	return nil
}

func validateStrategyLimits(strategy domain.PaymentStrategy) error {
	if strategy.MonthlyExtra < 0 {
		return errors.New("monthly extra must not be negative")
	}
	if strategy.MonthlyExtra > MaxMonthlyExtra {
		return fmt.Errorf("monthly extra exceeds the maximum of $%.2f", MaxMonthlyExtra)
	}
	if strategy.LumpSumAmount < 0 {
		return errors.New("lump sum amount must not be negative")
	}
	if strategy.LumpSumAmount > MaxLumpSum {
		return fmt.Errorf("lump sum amount exceeds the maximum of $%.2f", MaxLumpSum)
	}
	if strategy.LumpSumMonth < 0 {
		return errors.New("lump sum month must not be negative")
	}
	return nil
}

// planCacheKey derives a stable cache key from the canonical JSON encoding
// of the input.
func planCacheKey(input domain.RefinancePlanInput) string {
	raw, _ := json.Marshal(input)
	sum := sha256.Sum256(raw)
	return "plan:" + hex.EncodeToString(sum[:])
}
