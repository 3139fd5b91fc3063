package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"mortgage-planner/domain"
)

// AIService turns a computed refinance plan into a short prose explanation.
// It calls an OpenAI-compatible chat API when OPENAI_API_KEY is set and
// falls back to a deterministic summary otherwise, so the plan endpoints
// never depend on the API being reachable.
type AIService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewAIService() *AIService {
	apiKey := os.Getenv("OPENAI_API_KEY")

	return &AIService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GeneratePlanExplanation summarizes what the refinance scenario saves (or
// costs) relative to riding out the original schedule.
func (s *AIService) GeneratePlanExplanation(
	input domain.RefinancePlanInput,
	result domain.RefinancePlanResult,
) string {
	fallback := s.generateFallbackExplanation(result)
	if !s.enabled {
		return fallback
	}

	baselineMonths, baselineInterest := scheduleTotals(result.Original)
	planMonths, planInterest := planTotals(result)

	prompt := fmt.Sprintf(`Analyze this mortgage refinance plan and write a short, clear explanation for the borrower.

LOAN:
- Principal: $%.2f at %.2f%% over %d years, standard payment $%.2f/month
- Extra principal before refinance: $%.2f/month, lump sum $%.2f at month %d
- Refinance at month %d to %.2f%%: new payment $%.2f/month standard, $%.2f/month with extra

OUTCOME:
- Sticking with the standard schedule: paid off in %d months with $%.2f total interest
- Following the plan: paid off in %d months with $%.2f total interest

INSTRUCTIONS:
1. Explain in plain language whether the plan saves money and time, and roughly how much.
2. Mention the role of the lump sum and the extra monthly principal.
3. Be realistic; do not overstate precision beyond whole dollars.

Write 3-4 sentences anyone can understand.`,
		input.Principal, input.RateBefore*100, input.TermYears, result.OriginalPayment,
		input.ExtraBefore, input.LumpSumAmount, input.LumpSumMonth,
		input.RefinanceMonth, input.RateAfter*100, result.RefinancePayment, result.RefinancePaymentExtra,
		baselineMonths, baselineInterest,
		planMonths, planInterest)

	explanation, err := s.callLLM(prompt)
	if err != nil {
		log.Printf("Error calling AI service for plan explanation: %v", err)
		return fallback
	}

	return explanation
}

func (s *AIService) callLLM(prompt string) (string, error) {
	reqBody := chatRequest{
		Model: "gpt-4o-mini",
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a mortgage advisor. You explain amortization and refinance tradeoffs in clear, plain language, always grounded in the concrete numbers you are given. You never invent figures.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (s *AIService) generateFallbackExplanation(result domain.RefinancePlanResult) string {
	baselineMonths, baselineInterest := scheduleTotals(result.Original)
	planMonths, planInterest := planTotals(result)

	if planMonths == 0 {
		return "The loan pays off before the refinance month, so there is nothing left to refinance."
	}

	saved := baselineInterest - planInterest
	monthsSaved := baselineMonths - planMonths
	if saved >= 0 {
		return fmt.Sprintf("Following this plan pays the loan off in %d months instead of %d, saving about $%.0f in interest (%d months sooner).",
			planMonths, baselineMonths, saved, monthsSaved)
	}
	return fmt.Sprintf("Following this plan pays the loan off in %d months versus %d on the standard schedule, but costs about $%.0f more in interest.",
		planMonths, baselineMonths, -saved)
}

func scheduleTotals(schedule domain.Schedule) (months int, interest float64) {
	last, ok := schedule.Last()
	if !ok {
		return 0, 0
	}
	return last.Month, last.CumulativeInterest
}

// planTotals reads the end state of the strategy path: the post-refinance
// schedule with extras when the refinance happened, otherwise the
// pre-refinance schedule (cumulative totals are already continuous).
func planTotals(result domain.RefinancePlanResult) (months int, interest float64) {
	if last, ok := result.PostRefinanceExtra.Last(); ok {
		return last.Month, last.CumulativeInterest
	}
	return scheduleTotals(result.PreRefinance)
}
