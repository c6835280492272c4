package repository

import (
	"context"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteRepository handles project note data access operations
type NoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository instance
func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create creates a new note
func (r *NoteRepository) Create(ctx context.Context, note *domain.ProjectNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// GetByID retrieves a note by its ID
func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectNote, error) {
	var note domain.ProjectNote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByProject returns all notes for a project, newest first
func (r *NoteRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectNote, error) {
	var notes []domain.ProjectNote
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

// Update updates an existing note
func (r *NoteRepository) Update(ctx context.Context, note *domain.ProjectNote) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectNote{}, "id = ?", id).Error
}

// DeleteByProject removes all notes for a project
func (r *NoteRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectNote{}, "project_id = ?", projectID).Error
}
