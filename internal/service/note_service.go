package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crestline-build/bidtrack-api/internal/auth"
	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/mapper"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteService handles project notes
type NoteService struct {
	noteRepo    *repository.NoteRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo *repository.NoteRepository, projectRepo *repository.ProjectRepository, logger *zap.Logger) *NoteService {
	return &NoteService{
		noteRepo:    noteRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Create adds a note to a project, stamping the author from the request context
func (s *NoteService) Create(ctx context.Context, projectID uuid.UUID, req *domain.CreateNoteRequest) (*domain.ProjectNoteDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	note := &domain.ProjectNote{
		ProjectID: projectID,
		Body:      req.Body,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		note.AuthorID = &userCtx.UserID
		note.AuthorName = userCtx.DisplayName
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	dto := mapper.NoteToDTO(note)
	return &dto, nil
}

// ListByProject returns all notes for a project, newest first
func (s *NoteService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectNoteDTO, error) {
	notes, err := s.noteRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	dtos := make([]domain.ProjectNoteDTO, len(notes))
	for i := range notes {
		dtos[i] = mapper.NoteToDTO(&notes[i])
	}
	return dtos, nil
}

// Update replaces a note's body. Only the author may edit their note.
func (s *NoteService) Update(ctx context.Context, noteID uuid.UUID, req *domain.UpdateNoteRequest) (*domain.ProjectNoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if userCtx, ok := auth.FromContext(ctx); ok && note.AuthorID != nil {
		if *note.AuthorID != userCtx.UserID && !userCtx.IsAdmin() {
			return nil, ErrPermissionDenied
		}
	}

	note.Body = req.Body
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	dto := mapper.NoteToDTO(note)
	return &dto, nil
}

// Delete removes a note. Only the author or an admin may delete it.
func (s *NoteService) Delete(ctx context.Context, noteID uuid.UUID) error {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get note: %w", err)
	}

	if userCtx, ok := auth.FromContext(ctx); ok && note.AuthorID != nil {
		if *note.AuthorID != userCtx.UserID && !userCtx.IsAdmin() {
			return ErrPermissionDenied
		}
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
