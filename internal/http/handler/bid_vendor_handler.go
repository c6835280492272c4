package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BidVendorHandler handles HTTP requests for project-vendor assignments,
// phases, and estimating responses
type BidVendorHandler struct {
	bidVendorService *service.BidVendorService
	logger           *zap.Logger
}

// NewBidVendorHandler creates a new BidVendorHandler
func NewBidVendorHandler(bidVendorService *service.BidVendorService, logger *zap.Logger) *BidVendorHandler {
	return &BidVendorHandler{
		bidVendorService: bidVendorService,
		logger:           logger,
	}
}

// AssignVendor godoc
// @Summary Assign vendor to project
// @Description Create the relationship with optional initial phases and financials. Re-submitting after a partial failure completes the remaining pieces.
// @Tags BidVendors
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param assignment body domain.AssignVendorRequest true "Assignment"
// @Success 201 {object} domain.LegacyBidVendor
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/vendors [post]
func (h *BidVendorHandler) AssignVendor(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.AssignVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	legacy, err := h.bidVendorService.AssignVendor(r.Context(), projectID, &req)
	if err != nil {
		h.logger.Error("failed to assign vendor",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, legacy)
}

// GetBidVendor godoc
// @Summary Get bid vendor
// @Description Get one assignment in the flat legacy projection
// @Tags BidVendors
// @Produce json
// @Param relId path string true "Relationship ID"
// @Success 200 {object} domain.LegacyBidVendor
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /bid-vendors/{relId} [get]
func (h *BidVendorHandler) GetBidVendor(w http.ResponseWriter, r *http.Request) {
	relID, err := pathUUID(r, "relId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid relationship ID")
		return
	}

	legacy, err := h.bidVendorService.GetLegacy(r.Context(), relID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, legacy)
}

// SaveBidVendor godoc
// @Summary Save bid vendor
// @Description Accept the flat legacy record and persist it as normalized rows
// @Tags BidVendors
// @Accept json
// @Produce json
// @Param relId path string true "Relationship ID"
// @Param bidVendor body domain.LegacyBidVendor true "Legacy record"
// @Success 200 {object} domain.LegacyBidVendor
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /bid-vendors/{relId} [put]
func (h *BidVendorHandler) SaveBidVendor(w http.ResponseWriter, r *http.Request) {
	relID, err := pathUUID(r, "relId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid relationship ID")
		return
	}

	var legacy domain.LegacyBidVendor
	if err := json.NewDecoder(r.Body).Decode(&legacy); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.bidVendorService.SaveLegacy(r.Context(), relID, &legacy)
	if err != nil {
		h.logger.Error("failed to save bid vendor",
			zap.String("relationship_id", relID.String()),
			zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// Unassign godoc
// @Summary Unassign vendor
// @Description Remove the assignment and its phases, financials and responses
// @Tags BidVendors
// @Param relId path string true "Relationship ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /bid-vendors/{relId} [delete]
func (h *BidVendorHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	relID, err := pathUUID(r, "relId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid relationship ID")
		return
	}

	if err := h.bidVendorService.Unassign(r.Context(), relID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListPhases godoc
// @Summary List phases
// @Tags BidVendors
// @Produce json
// @Param relId path string true "Relationship ID"
// @Success 200 {array} domain.PhaseDTO
// @Security BearerAuth
// @Router /bid-vendors/{relId}/phases [get]
func (h *BidVendorHandler) ListPhases(w http.ResponseWriter, r *http.Request) {
	relID, err := pathUUID(r, "relId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid relationship ID")
		return
	}

	phases, err := h.bidVendorService.ListPhases(r.Context(), relID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, phases)
}

// UpdatePhase godoc
// @Summary Update phase
// @Description Upsert one phase row of an assignment
// @Tags BidVendors
// @Accept json
// @Produce json
// @Param relId path string true "Relationship ID"
// @Param phaseType path string true "Phase type" Enums(quote_confirmed, buy_number, po, submittals, revised_plans, equipment_release, closeouts)
// @Param phase body domain.UpdatePhaseRequest true "Fields to update"
// @Success 200 {object} domain.PhaseDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /bid-vendors/{relId}/phases/{phaseType} [put]
func (h *BidVendorHandler) UpdatePhase(w http.ResponseWriter, r *http.Request) {
	relID, err := pathUUID(r, "relId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid relationship ID")
		return
	}
	phaseType := domain.PhaseType(chi.URLParam(r, "phaseType"))
	if !phaseType.IsValid() {
		respondWithError(w, http.StatusBadRequest, "Invalid phase type")
		return
	}

	var req domain.UpdatePhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	phase, err := h.bidVendorService.UpdatePhase(r.Context(), relID, phaseType, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, phase)
}

// AddEstResponse godoc
// @Summary Add estimating response
// @Description Append a new estimating response; the newest wins in the legacy projection
// @Tags BidVendors
// @Accept json
// @Param relId path string true "Relationship ID"
// @Param response body domain.UpsertEstResponseRequest true "Response"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /bid-vendors/{relId}/est-responses [post]
func (h *BidVendorHandler) AddEstResponse(w http.ResponseWriter, r *http.Request) {
	relID, err := pathUUID(r, "relId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid relationship ID")
		return
	}

	var req domain.UpsertEstResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.bidVendorService.AddEstResponse(r.Context(), relID, &req); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
