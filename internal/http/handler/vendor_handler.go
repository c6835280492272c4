package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"go.uber.org/zap"
)

// VendorHandler handles HTTP requests for vendors and their contacts
type VendorHandler struct {
	vendorService *service.VendorService
	logger        *zap.Logger
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *service.VendorService, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		logger:        logger,
	}
}

// ListVendors godoc
// @Summary List vendors
// @Description Get paginated list of vendors with optional filters
// @Tags Vendors
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by company name"
// @Param specialty query string false "Filter by specialty"
// @Param priority query bool false "Filter priority vendors"
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, companyName, specialty)
// @Param sortDir query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.PaginatedResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors [get]
func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	filters := &repository.VendorFilters{
		Search:    r.URL.Query().Get("search"),
		Specialty: r.URL.Query().Get("specialty"),
	}
	if p := r.URL.Query().Get("priority"); p != "" {
		priority, err := strconv.ParseBool(p)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid priority: must be a boolean")
			return
		}
		filters.Priority = &priority
	}

	vendors, total, err := h.vendorService.List(r.Context(), page, pageSize, filters, parseSort(r))
	if err != nil {
		h.logger.Error("failed to list vendors", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(vendors, total, page, pageSize))
}

// GetVendor godoc
// @Summary Get vendor
// @Description Get one vendor with its contact list
// @Tags Vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} domain.VendorDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}

	vendor, err := h.vendorService.GetWithContacts(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vendor)
}

// CreateVendor godoc
// @Summary Create vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Param vendor body domain.CreateVendorRequest true "Vendor to create"
// @Success 201 {object} domain.VendorDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors [post]
func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	vendor, err := h.vendorService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create vendor", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vendor)
}

// UpdateVendor godoc
// @Summary Update vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param vendor body domain.UpdateVendorRequest true "Fields to update"
// @Success 200 {object} domain.VendorDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors/{id} [patch]
func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}

	var req domain.UpdateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	vendor, err := h.vendorService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vendor)
}

// DeleteVendor godoc
// @Summary Delete vendor
// @Tags Vendors
// @Param id path string true "Vendor ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors/{id} [delete]
func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}

	if err := h.vendorService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListContacts godoc
// @Summary List vendor contacts
// @Tags Vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {array} domain.VendorContactDTO
// @Security BearerAuth
// @Router /vendors/{id}/contacts [get]
func (h *VendorHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}

	contacts, err := h.vendorService.ListContacts(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contacts)
}

// AddContact godoc
// @Summary Add vendor contact
// @Tags Vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param contact body domain.CreateVendorContactRequest true "Contact to create"
// @Success 201 {object} domain.VendorContactDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors/{id}/contacts [post]
func (h *VendorHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}

	var req domain.CreateVendorContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contact, err := h.vendorService.AddContact(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, contact)
}

// UpdateContact godoc
// @Summary Update vendor contact
// @Tags Vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param contactId path string true "Contact ID"
// @Param contact body domain.UpdateVendorContactRequest true "Fields to update"
// @Success 200 {object} domain.VendorContactDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors/{id}/contacts/{contactId} [patch]
func (h *VendorHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}
	contactID, err := pathUUID(r, "contactId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	var req domain.UpdateVendorContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contact, err := h.vendorService.UpdateContact(r.Context(), vendorID, contactID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary Delete vendor contact
// @Description Remove a contact. Deleting the primary contact clears the vendor's primary pointer.
// @Tags Vendors
// @Param id path string true "Vendor ID"
// @Param contactId path string true "Contact ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors/{id}/contacts/{contactId} [delete]
func (h *VendorHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}
	contactID, err := pathUUID(r, "contactId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	if err := h.vendorService.DeleteContact(r.Context(), vendorID, contactID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// SetPrimaryContact godoc
// @Summary Set primary contact
// @Description Promote one contact to primary, demoting any other
// @Tags Vendors
// @Accept json
// @Param id path string true "Vendor ID"
// @Param request body domain.SetPrimaryContactRequest true "Contact to promote"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /vendors/{id}/primary-contact [put]
func (h *VendorHandler) SetPrimaryContact(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}

	var req domain.SetPrimaryContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.vendorService.SetPrimaryContact(r.Context(), vendorID, req.ContactID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
