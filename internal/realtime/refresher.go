package realtime

import (
	"context"
	"fmt"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StoreRefresher reloads whole tables from the database into the store.
// It backs the refresh strategy and the startup warm load.
type StoreRefresher struct {
	db     *gorm.DB
	store  *Store
	logger *zap.Logger
}

// NewStoreRefresher creates a refresher bound to one store
func NewStoreRefresher(db *gorm.DB, store *Store, logger *zap.Logger) *StoreRefresher {
	return &StoreRefresher{
		db:     db,
		store:  store,
		logger: logger,
	}
}

// Refresh replaces the store's contents for one table with the current
// database state
func (r *StoreRefresher) Refresh(ctx context.Context, table string) error {
	switch table {
	case TableProjects:
		var projects []domain.Project
		if err := r.db.WithContext(ctx).Find(&projects).Error; err != nil {
			return fmt.Errorf("reload projects: %w", err)
		}
		r.store.Projects.Replace(projects)
	case TableVendors:
		var vendors []domain.Vendor
		if err := r.db.WithContext(ctx).Preload("Contacts").Find(&vendors).Error; err != nil {
			return fmt.Errorf("reload vendors: %w", err)
		}
		r.store.Vendors.Replace(vendors)
	case TableProjectVendors:
		var rels []domain.ProjectVendor
		if err := r.db.WithContext(ctx).Find(&rels).Error; err != nil {
			return fmt.Errorf("reload project vendors: %w", err)
		}
		r.store.Relationships.Replace(rels)
	case TableProjectNotes:
		var notes []domain.ProjectNote
		if err := r.db.WithContext(ctx).Find(&notes).Error; err != nil {
			return fmt.Errorf("reload project notes: %w", err)
		}
		r.store.Notes.Replace(notes)
	default:
		return fmt.Errorf("unknown table %q", table)
	}
	return nil
}

// Warm loads every watched table, typically once at startup before the
// listener begins applying changes
func (r *StoreRefresher) Warm(ctx context.Context) error {
	for _, table := range []string{TableProjects, TableVendors, TableProjectVendors, TableProjectNotes} {
		if err := r.Refresh(ctx, table); err != nil {
			return err
		}
	}
	r.logger.Info("realtime store warmed",
		zap.Int("projects", r.store.Projects.Len()),
		zap.Int("vendors", r.store.Vendors.Len()),
		zap.Int("relationships", r.store.Relationships.Len()),
		zap.Int("notes", r.store.Notes.Len()))
	return nil
}
