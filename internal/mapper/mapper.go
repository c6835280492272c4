package mapper

import (
	"github.com/crestline-build/bidtrack-api/internal/domain"
)

const timeLayout = "2006-01-02T15:04:05Z"

// VendorToDTO converts Vendor to VendorDTO
func VendorToDTO(vendor *domain.Vendor) domain.VendorDTO {
	dto := domain.VendorDTO{
		ID:               vendor.ID,
		CompanyName:      vendor.CompanyName,
		Specialty:        vendor.Specialty,
		IsPriority:       vendor.IsPriority,
		PrimaryContactID: vendor.PrimaryContactID,
		Notes:            vendor.Notes,
		CreatedAt:        vendor.CreatedAt.Format(timeLayout),
		UpdatedAt:        vendor.UpdatedAt.Format(timeLayout),
	}

	if vendor.PrimaryContact != nil {
		c := VendorContactToDTO(vendor.PrimaryContact)
		dto.PrimaryContact = &c
	}

	for i := range vendor.Contacts {
		dto.Contacts = append(dto.Contacts, VendorContactToDTO(&vendor.Contacts[i]))
	}

	return dto
}

// VendorContactToDTO converts VendorContact to VendorContactDTO
func VendorContactToDTO(contact *domain.VendorContact) domain.VendorContactDTO {
	return domain.VendorContactDTO{
		ID:        contact.ID,
		VendorID:  contact.VendorID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Title:     contact.Title,
		IsPrimary: contact.IsPrimary,
	}
}

// ProjectToDTO converts Project to ProjectDTO. The legacy archived/on-hold
// pair is derived from the cycle of the project's current department.
func ProjectToDTO(project *domain.Project) domain.ProjectDTO {
	cycle := project.EstimatingCycle
	if project.Department == domain.DepartmentAPM {
		cycle = project.APMCycle
	}
	archived, onHold := cycle.Flags()

	return domain.ProjectDTO{
		ID:              project.ID,
		Name:            project.Name,
		Address:         project.Address,
		Description:     project.Description,
		DueDate:         project.DueDate,
		Status:          project.Status,
		Department:      project.Department,
		EstimatingCycle: project.EstimatingCycle,
		APMCycle:        project.APMCycle,
		Archived:        archived,
		OnHold:          onHold,
		CreatedByName:   project.CreatedByName,
		VendorCount:     len(project.Vendors),
		CreatedAt:       project.CreatedAt.Format(timeLayout),
		UpdatedAt:       project.UpdatedAt.Format(timeLayout),
	}
}

// PhaseToDTO converts Phase to PhaseDTO
func PhaseToDTO(phase *domain.Phase) domain.PhaseDTO {
	return domain.PhaseDTO{
		ID:              phase.ID,
		ProjectVendorID: phase.ProjectVendorID,
		PhaseType:       phase.PhaseType,
		Status:          phase.Status,
		RequestedDate:   phase.RequestedDate,
		FollowUpDate:    phase.FollowUpDate,
		CompletedDate:   phase.CompletedDate,
		Notes:           phase.Notes,
		IsPriority:      phase.IsPriority,
	}
}

// NoteToDTO converts ProjectNote to ProjectNoteDTO
func NoteToDTO(note *domain.ProjectNote) domain.ProjectNoteDTO {
	return domain.ProjectNoteDTO{
		ID:         note.ID,
		ProjectID:  note.ProjectID,
		AuthorName: note.AuthorName,
		Body:       note.Body,
		CreatedAt:  note.CreatedAt.Format(timeLayout),
		UpdatedAt:  note.UpdatedAt.Format(timeLayout),
	}
}

// NotificationToDTO converts Notification to NotificationDTO
func NotificationToDTO(n *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:         n.ID,
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt.Format(timeLayout),
	}
}

// FileToDTO converts File to FileDTO
func FileToDTO(f *domain.File) domain.FileDTO {
	return domain.FileDTO{
		ID:             f.ID,
		EntityType:     f.EntityType,
		EntityID:       f.EntityID,
		FileName:       f.FileName,
		ContentType:    f.ContentType,
		Size:           f.Size,
		UploadedByName: f.UploadedByName,
		CreatedAt:      f.CreatedAt.Format(timeLayout),
	}
}
