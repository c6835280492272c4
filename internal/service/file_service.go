package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/crestline-build/bidtrack-api/internal/auth"
	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/mapper"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Entity types attachments can be bound to
const (
	FileEntityProject = "project"
	FileEntityVendor  = "vendor"
)

// FileService handles attachment uploads. Bytes go to the configured
// storage backend; metadata lives in the files table.
type FileService struct {
	fileRepo *repository.FileRepository
	store    storage.Storage
	logger   *zap.Logger
}

// NewFileService creates a new FileService
func NewFileService(fileRepo *repository.FileRepository, store storage.Storage, logger *zap.Logger) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		store:    store,
		logger:   logger,
	}
}

// Upload stores the attachment bytes and records its metadata
func (s *FileService) Upload(ctx context.Context, entityType string, entityID uuid.UUID, filename, contentType string, data io.Reader) (*domain.FileDTO, error) {
	if entityType != FileEntityProject && entityType != FileEntityVendor {
		return nil, ErrInvalidInput
	}

	storagePath, size, err := s.store.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	file := &domain.File{
		EntityType:  entityType,
		EntityID:    entityID,
		FileName:    filename,
		ContentType: contentType,
		StoragePath: storagePath,
		Size:        size,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		file.UploadedByID = &userCtx.UserID
		file.UploadedByName = userCtx.DisplayName
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Orphaned bytes are cheaper than a metadata row pointing nowhere
		if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up stored file after metadata error",
				zap.String("storage_path", storagePath),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to record file metadata: %w", err)
	}

	dto := mapper.FileToDTO(file)
	return &dto, nil
}

// Download opens an attachment for streaming, returning its metadata too
func (s *FileService) Download(ctx context.Context, id uuid.UUID) (*domain.File, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get file: %w", err)
	}

	reader, err := s.store.Download(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, reader, nil
}

// ListByEntity returns attachment metadata for one entity, newest first
func (s *FileService) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.FileDTO, error) {
	files, err := s.fileRepo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	dtos := make([]domain.FileDTO, len(files))
	for i := range files {
		dtos[i] = mapper.FileToDTO(&files[i])
	}
	return dtos, nil
}

// Delete removes an attachment's bytes and metadata
func (s *FileService) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get file: %w", err)
	}

	if err := s.store.Delete(ctx, file.StoragePath); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete file metadata: %w", err)
	}
	return nil
}
