package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VendorFetcher loads one vendor with its primary contact resolved.
// Row images from the triggers carry only foreign keys, so a vendor whose
// primary contact changed needs a single targeted refetch.
type VendorFetcher interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)
}

// Store holds the live in-memory collections the reconciler keeps in
// sync with the database. Consumers read snapshots via the collection
// accessors; only change events mutate the contents.
type Store struct {
	logger        *zap.Logger
	vendorFetcher VendorFetcher

	Projects      *Collection[domain.Project]
	Vendors       *Collection[domain.Vendor]
	Relationships *Collection[domain.ProjectVendor]
	Notes         *Collection[domain.ProjectNote]
}

// NewStore creates an empty store
func NewStore(vendorFetcher VendorFetcher, logger *zap.Logger) *Store {
	return &Store{
		logger:        logger,
		vendorFetcher: vendorFetcher,
		Projects:      NewCollection(func(p domain.Project) uuid.UUID { return p.ID }),
		Vendors:       NewCollection(func(v domain.Vendor) uuid.UUID { return v.ID }),
		Relationships: NewCollection(func(r domain.ProjectVendor) uuid.UUID { return r.ID }),
		Notes:         NewCollection(func(n domain.ProjectNote) uuid.UUID { return n.ID }),
	}
}

// Register wires the store's appliers into the reconciler
func (s *Store) Register(rec *Reconciler) {
	rec.RegisterApplier(TableProjects, ApplierFunc(s.applyProject))
	rec.RegisterApplier(TableVendors, ApplierFunc(s.applyVendor))
	rec.RegisterApplier(TableProjectVendors, ApplierFunc(s.applyRelationship))
	rec.RegisterApplier(TableProjectNotes, ApplierFunc(s.applyNote))
}

func (s *Store) applyProject(ctx context.Context, evt *ChangeEvent) error {
	switch evt.Type {
	case EventInsert, EventUpdate:
		var row projectRow
		if err := json.Unmarshal(evt.New, &row); err != nil {
			return fmt.Errorf("decode project row: %w", err)
		}
		project := row.toDomain()
		if evt.Type == EventInsert {
			s.Projects.Insert(project)
		} else {
			s.Projects.Update(project)
		}
	case EventDelete:
		id, err := rowID(evt.Old)
		if err != nil {
			return fmt.Errorf("decode project row: %w", err)
		}
		s.Projects.Delete(id)
		// Relationship rows for the project are gone server-side too;
		// drop them without waiting for per-row delete events.
		removed := s.Relationships.DeleteWhere(func(r domain.ProjectVendor) bool {
			return r.ProjectID == id
		})
		if removed > 0 {
			s.logger.Debug("cascaded project delete to relationships",
				zap.String("project_id", id.String()),
				zap.Int("removed", removed))
		}
	}
	return nil
}

func (s *Store) applyVendor(ctx context.Context, evt *ChangeEvent) error {
	switch evt.Type {
	case EventInsert:
		var row vendorRow
		if err := json.Unmarshal(evt.New, &row); err != nil {
			return fmt.Errorf("decode vendor row: %w", err)
		}
		s.Vendors.Insert(row.toDomain())
	case EventUpdate:
		var row vendorRow
		if err := json.Unmarshal(evt.New, &row); err != nil {
			return fmt.Errorf("decode vendor row: %w", err)
		}
		vendor := row.toDomain()
		if s.primaryContactChanged(evt.Old, row) && s.vendorFetcher != nil {
			fresh, err := s.vendorFetcher.GetByID(ctx, row.ID)
			if err != nil {
				s.logger.Warn("vendor refetch after primary contact change failed",
					zap.String("vendor_id", row.ID.String()),
					zap.Error(err))
			} else if fresh != nil {
				vendor = *fresh
			}
		}
		s.Vendors.Update(vendor)
	case EventDelete:
		id, err := rowID(evt.Old)
		if err != nil {
			return fmt.Errorf("decode vendor row: %w", err)
		}
		s.Vendors.Delete(id)
	}
	return nil
}

func (s *Store) applyRelationship(ctx context.Context, evt *ChangeEvent) error {
	switch evt.Type {
	case EventInsert, EventUpdate:
		var row relationshipRow
		if err := json.Unmarshal(evt.New, &row); err != nil {
			return fmt.Errorf("decode relationship row: %w", err)
		}
		rel := row.toDomain()
		if evt.Type == EventInsert {
			s.Relationships.Insert(rel)
		} else {
			s.Relationships.Update(rel)
		}
	case EventDelete:
		id, err := rowID(evt.Old)
		if err != nil {
			return fmt.Errorf("decode relationship row: %w", err)
		}
		s.Relationships.Delete(id)
	}
	return nil
}

func (s *Store) applyNote(ctx context.Context, evt *ChangeEvent) error {
	switch evt.Type {
	case EventInsert, EventUpdate:
		var row noteRow
		if err := json.Unmarshal(evt.New, &row); err != nil {
			return fmt.Errorf("decode note row: %w", err)
		}
		note := row.toDomain()
		if evt.Type == EventInsert {
			s.Notes.Insert(note)
		} else {
			s.Notes.Update(note)
		}
	case EventDelete:
		id, err := rowID(evt.Old)
		if err != nil {
			return fmt.Errorf("decode note row: %w", err)
		}
		s.Notes.Delete(id)
	}
	return nil
}

// primaryContactChanged compares the old row image's primary contact
// against the new one. A missing or undecodable old image counts as
// changed, which errs on the side of refetching.
func (s *Store) primaryContactChanged(old json.RawMessage, fresh vendorRow) bool {
	if len(old) == 0 {
		return true
	}
	var prev vendorRow
	if err := json.Unmarshal(old, &prev); err != nil {
		return true
	}
	switch {
	case prev.PrimaryContactID == nil && fresh.PrimaryContactID == nil:
		return false
	case prev.PrimaryContactID == nil || fresh.PrimaryContactID == nil:
		return true
	default:
		return *prev.PrimaryContactID != *fresh.PrimaryContactID
	}
}

// rowID pulls the id column out of a row image
func rowID(row json.RawMessage) (uuid.UUID, error) {
	var ref struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(row, &ref); err != nil {
		return uuid.Nil, err
	}
	if ref.ID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("row image missing id")
	}
	return ref.ID, nil
}
