package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"go.uber.org/zap"
)

// NoteHandler handles HTTP requests for project notes
type NoteHandler struct {
	noteService *service.NoteService
	logger      *zap.Logger
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *service.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// ListNotes godoc
// @Summary List project notes
// @Tags Notes
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.ProjectNoteDTO
// @Security BearerAuth
// @Router /projects/{id}/notes [get]
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	notes, err := h.noteService.ListByProject(r.Context(), projectID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

// CreateNote godoc
// @Summary Create project note
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param note body domain.CreateNoteRequest true "Note"
// @Success 201 {object} domain.ProjectNoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/notes [post]
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	note, err := h.noteService.Create(r.Context(), projectID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

// UpdateNote godoc
// @Summary Update note
// @Tags Notes
// @Accept json
// @Produce json
// @Param noteId path string true "Note ID"
// @Param note body domain.UpdateNoteRequest true "New body"
// @Success 200 {object} domain.ProjectNoteDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /notes/{noteId} [patch]
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathUUID(r, "noteId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	note, err := h.noteService.Update(r.Context(), noteID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete note
// @Tags Notes
// @Param noteId path string true "Note ID"
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /notes/{noteId} [delete]
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathUUID(r, "noteId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	if err := h.noteService.Delete(r.Context(), noteID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
