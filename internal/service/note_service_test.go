package service_test

import (
	"context"
	"testing"

	"github.com/crestline-build/bidtrack-api/internal/auth"
	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"github.com/crestline-build/bidtrack-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newNoteService(t *testing.T) (*service.NoteService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewNoteService(
		repository.NewNoteRepository(db),
		repository.NewProjectRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func userCtx(userID uuid.UUID, role string) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      userID,
		DisplayName: "Jordan Smith",
		Role:        role,
	})
}

func TestNoteService_CreateStampsAuthor(t *testing.T) {
	svc, db := newNoteService(t)
	project := testutil.CreateTestProject(t, db, "North Tower")

	authorID := uuid.New()
	note, err := svc.Create(userCtx(authorID, auth.RoleMember), project.ID, &domain.CreateNoteRequest{Body: "call back Monday"})
	require.NoError(t, err)
	assert.Equal(t, "call back Monday", note.Body)
	assert.Equal(t, "Jordan Smith", note.AuthorName)

	var stored domain.ProjectNote
	require.NoError(t, db.First(&stored, "id = ?", note.ID).Error)
	require.NotNil(t, stored.AuthorID)
	assert.Equal(t, authorID, *stored.AuthorID)
}

func TestNoteService_UpdateOnlyByAuthorOrAdmin(t *testing.T) {
	svc, db := newNoteService(t)
	project := testutil.CreateTestProject(t, db, "North Tower")

	authorID := uuid.New()
	note, err := svc.Create(userCtx(authorID, auth.RoleMember), project.ID, &domain.CreateNoteRequest{Body: "draft"})
	require.NoError(t, err)

	_, err = svc.Update(userCtx(uuid.New(), auth.RoleMember), note.ID, &domain.UpdateNoteRequest{Body: "hijacked"})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	updated, err := svc.Update(userCtx(authorID, auth.RoleMember), note.ID, &domain.UpdateNoteRequest{Body: "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Body)

	// Admins may edit anyone's note
	updated, err = svc.Update(userCtx(uuid.New(), auth.RoleAdmin), note.ID, &domain.UpdateNoteRequest{Body: "admin edit"})
	require.NoError(t, err)
	assert.Equal(t, "admin edit", updated.Body)
}

func TestNoteService_DeleteOnlyByAuthorOrAdmin(t *testing.T) {
	svc, db := newNoteService(t)
	project := testutil.CreateTestProject(t, db, "North Tower")

	authorID := uuid.New()
	note, err := svc.Create(userCtx(authorID, auth.RoleMember), project.ID, &domain.CreateNoteRequest{Body: "draft"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(userCtx(uuid.New(), auth.RoleMember), note.ID), service.ErrPermissionDenied)
	require.NoError(t, svc.Delete(userCtx(authorID, auth.RoleMember), note.ID))
	assert.ErrorIs(t, svc.Delete(userCtx(authorID, auth.RoleMember), note.ID), service.ErrNotFound)
}

func TestNoteService_CreateMissingProject(t *testing.T) {
	svc, _ := newNoteService(t)

	_, err := svc.Create(context.Background(), uuid.New(), &domain.CreateNoteRequest{Body: "orphan"})
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestNoteService_ListNewestFirst(t *testing.T) {
	svc, db := newNoteService(t)
	project := testutil.CreateTestProject(t, db, "North Tower")
	ctx := userCtx(uuid.New(), auth.RoleMember)

	for _, body := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, project.ID, &domain.CreateNoteRequest{Body: body})
		require.NoError(t, err)
	}

	notes, err := svc.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
}
