package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/crestline-build/bidtrack-api/internal/config"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler handles HTTP requests for attachments
type FileHandler struct {
	fileService *service.FileService
	maxBytes    int64
	logger      *zap.Logger
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(fileService *service.FileService, cfg *config.StorageConfig, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxBytes:    cfg.MaxUploadSizeMB * 1024 * 1024,
		logger:      logger,
	}
}

// UploadFile godoc
// @Summary Upload attachment
// @Description Upload a file attached to a project or vendor (multipart form, field "file")
// @Tags Files
// @Accept mpfd
// @Produce json
// @Param entityType path string true "Entity type" Enums(project, vendor)
// @Param entityId path string true "Entity ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.FileDTO
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security BearerAuth
// @Router /files/entity/{entityType}/{entityId} [post]
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	entityID, err := pathUUID(r, "entityId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entity ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds the %d MB upload limit", h.maxBytes/(1024*1024)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	dto, err := h.fileService.Upload(r.Context(), entityType, entityID, header.Filename, contentType, file)
	if err != nil {
		h.logger.Error("file upload failed",
			zap.String("entity_type", entityType),
			zap.String("filename", header.Filename),
			zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

// ListFiles godoc
// @Summary List attachments
// @Tags Files
// @Produce json
// @Param entityType path string true "Entity type" Enums(project, vendor)
// @Param entityId path string true "Entity ID"
// @Success 200 {array} domain.FileDTO
// @Security BearerAuth
// @Router /files/entity/{entityType}/{entityId} [get]
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	entityID, err := pathUUID(r, "entityId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entity ID")
		return
	}

	files, err := h.fileService.ListByEntity(r.Context(), entityType, entityID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, files)
}

// DownloadFile godoc
// @Summary Download attachment
// @Tags Files
// @Produce octet-stream
// @Param id path string true "File ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /files/{id} [get]
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID")
		return
	}

	meta, reader, err := h.fileService.Download(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.FileName))
	if meta.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", meta.Size))
	}

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("file download interrupted",
			zap.String("file_id", id.String()),
			zap.Error(err))
	}
}

// DeleteFile godoc
// @Summary Delete attachment
// @Tags Files
// @Param id path string true "File ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /files/{id} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID")
		return
	}

	if err := h.fileService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
