package realtime

import (
	"encoding/json"
	"fmt"
)

// EventType classifies a row change
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// IsValid checks if the EventType is a valid enum value
func (t EventType) IsValid() bool {
	return t == EventInsert || t == EventUpdate || t == EventDelete
}

// Watched table names as emitted by the notify triggers
const (
	TableProjects       = "projects"
	TableVendors        = "vendors"
	TableProjectVendors = "project_vendors"
	TableProjectNotes   = "project_notes"
)

// WatchedTables lists every table the notify triggers cover, in the
// order a full resync reloads them
var WatchedTables = []string{
	TableProjects,
	TableVendors,
	TableProjectVendors,
	TableProjectNotes,
}

// ChangeEvent is one row-change notification from the database.
// New carries the row image after the change (insert/update), Old the
// image before it (update/delete).
type ChangeEvent struct {
	Table string          `json:"table"`
	Type  EventType       `json:"type"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

// ParseEvent decodes a raw notification payload into a ChangeEvent
func ParseEvent(payload []byte) (*ChangeEvent, error) {
	var evt ChangeEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("malformed change payload: %w", err)
	}
	if evt.Table == "" {
		return nil, fmt.Errorf("change payload missing table")
	}
	if !evt.Type.IsValid() {
		return nil, fmt.Errorf("change payload has unknown type %q", evt.Type)
	}
	return &evt, nil
}
