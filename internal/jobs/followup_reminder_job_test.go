package jobs_test

import (
	"testing"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/jobs"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"github.com/crestline-build/bidtrack-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newReminderJob(t *testing.T) (*jobs.FollowUpReminderJob, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	notificationRepo := repository.NewNotificationRepository(db)
	job := jobs.NewFollowUpReminderJob(
		repository.NewPhaseRepository(db),
		repository.NewProjectVendorRepository(db),
		repository.NewProjectRepository(db),
		repository.NewVendorRepository(db),
		notificationRepo,
		service.NewNotificationService(notificationRepo, zap.NewNop()),
		zap.NewNop(),
		time.Minute,
	)
	return job, db
}

func seedDuePhase(t *testing.T, db *gorm.DB, assignee *uuid.UUID) *domain.Phase {
	t.Helper()
	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex Mechanical")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)
	if assignee != nil {
		require.NoError(t, db.Model(rel).Update("assigned_user_id", assignee).Error)
	}

	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	phase := &domain.Phase{
		ProjectVendorID: rel.ID,
		PhaseType:       domain.PhasePO,
		Status:          domain.PhaseStatusPending,
		FollowUpDate:    &yesterday,
	}
	require.NoError(t, db.Create(phase).Error)
	return phase
}

func countNotifications(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Notification{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestFollowUpReminderJob_NotifiesAssignedUserOncePerDay(t *testing.T) {
	job, db := newReminderJob(t)

	userID := uuid.New()
	phase := seedDuePhase(t, db, &userID)

	job.Run()
	assert.Equal(t, int64(1), countNotifications(t, db, userID))

	var notification domain.Notification
	require.NoError(t, db.First(&notification, "user_id = ?", userID).Error)
	assert.Equal(t, domain.NotificationTypeFollowUpDue, notification.Type)
	require.NotNil(t, notification.EntityID)
	assert.Equal(t, phase.ID, *notification.EntityID)
	assert.Contains(t, notification.Message, "Apex Mechanical")
	assert.Contains(t, notification.Message, "North Tower")

	// A second run the same day skips the already-notified phase
	job.Run()
	assert.Equal(t, int64(1), countNotifications(t, db, userID))
}

func TestFollowUpReminderJob_SkipsUnassignedPhases(t *testing.T) {
	job, db := newReminderJob(t)

	seedDuePhase(t, db, nil)

	job.Run()

	var count int64
	require.NoError(t, db.Model(&domain.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFollowUpReminderJob_IgnoresFutureFollowUps(t *testing.T) {
	job, db := newReminderJob(t)

	userID := uuid.New()
	phase := seedDuePhase(t, db, &userID)
	nextWeek := time.Now().UTC().Add(7 * 24 * time.Hour)
	require.NoError(t, db.Model(phase).Update("follow_up_date", nextWeek).Error)

	job.Run()
	assert.Equal(t, int64(0), countNotifications(t, db, userID))
}
