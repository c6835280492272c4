package handler

import (
	"net/http"

	"github.com/crestline-build/bidtrack-api/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler serves the summary read model
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetSummary godoc
// @Summary Get dashboard summary
// @Description Returns live project and vendor counts from the in-memory change-feed mirror plus the phases currently due for follow-up.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSummaryDTO
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("failed to build dashboard summary", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
