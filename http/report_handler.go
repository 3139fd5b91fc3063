package http

import (
	"encoding/json"
	"net/http"

	"mortgage-planner/domain"
	"mortgage-planner/report"
	"mortgage-planner/service"
)

type ReportHandler struct {
	service *service.PlanService
}

func NewReportHandler(service *service.PlanService) *ReportHandler {
	return &ReportHandler{service: service}
}

// PlanReport handles POST /plan/report: it computes the refinance plan for
// the posted parameters and returns it rendered as a PDF.
func (h *ReportHandler) PlanReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.RefinancePlanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.BuildRefinancePlan(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdf, err := report.BuildPlanPDF(input, result)
	if err != nil {
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="refinance-plan.pdf"`)
	w.Write(pdf)
}
