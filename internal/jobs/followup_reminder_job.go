package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"go.uber.org/zap"
)

// FollowUpReminderJobName is the name of the follow-up reminder job
const FollowUpReminderJobName = "follow_up_reminder"

// FollowUpReminderJob notifies assigned users about phases whose follow-up
// date has arrived. A user gets at most one notification per phase per day.
type FollowUpReminderJob struct {
	phaseRepo           *repository.PhaseRepository
	projectVendorRepo   *repository.ProjectVendorRepository
	projectRepo         *repository.ProjectRepository
	vendorRepo          *repository.VendorRepository
	notificationRepo    *repository.NotificationRepository
	notificationService *service.NotificationService
	logger              *zap.Logger
	timeout             time.Duration
}

// NewFollowUpReminderJob creates a new follow-up reminder job.
func NewFollowUpReminderJob(
	phaseRepo *repository.PhaseRepository,
	projectVendorRepo *repository.ProjectVendorRepository,
	projectRepo *repository.ProjectRepository,
	vendorRepo *repository.VendorRepository,
	notificationRepo *repository.NotificationRepository,
	notificationService *service.NotificationService,
	logger *zap.Logger,
	timeout time.Duration,
) *FollowUpReminderJob {
	return &FollowUpReminderJob{
		phaseRepo:           phaseRepo,
		projectVendorRepo:   projectVendorRepo,
		projectRepo:         projectRepo,
		vendorRepo:          vendorRepo,
		notificationRepo:    notificationRepo,
		notificationService: notificationService,
		logger:              logger,
		timeout:             timeout,
	}
}

// Run executes the follow-up reminder job.
// This is called by the scheduler according to the cron expression.
func (j *FollowUpReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	phases, err := j.phaseRepo.ListDueFollowUps(ctx, today)
	if err != nil {
		j.logger.Error("failed to list due follow-ups", zap.Error(err))
		return
	}

	var sent, skipped, failed int
	for i := range phases {
		switch err := j.remind(ctx, &phases[i], today); {
		case err == nil:
			sent++
		case errors.Is(err, errAlreadyNotified) || errors.Is(err, errNoAssignee):
			skipped++
		default:
			failed++
			j.logger.Warn("failed to send follow-up reminder",
				zap.String("phase_id", phases[i].ID.String()),
				zap.Error(err))
		}
	}

	j.logger.Info("follow-up reminder job completed",
		zap.Int("due_phases", len(phases)),
		zap.Int("sent", sent),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

var (
	errNoAssignee      = fmt.Errorf("no assigned user")
	errAlreadyNotified = fmt.Errorf("already notified today")
)

func (j *FollowUpReminderJob) remind(ctx context.Context, phase *domain.Phase, today time.Time) error {
	rel, err := j.projectVendorRepo.GetByID(ctx, phase.ProjectVendorID)
	if err != nil {
		return fmt.Errorf("failed to load relationship: %w", err)
	}
	if rel.AssignedUserID == nil {
		return errNoAssignee
	}

	exists, err := j.notificationRepo.ExistsForEntityToday(ctx, *rel.AssignedUserID, domain.NotificationTypeFollowUpDue, phase.ID, today)
	if err != nil {
		return fmt.Errorf("failed to check existing notifications: %w", err)
	}
	if exists {
		return errAlreadyNotified
	}

	projectName := "a project"
	if project, err := j.projectRepo.GetByID(ctx, rel.ProjectID); err == nil {
		projectName = project.Name
	}
	vendorName := "a vendor"
	if vendor, err := j.vendorRepo.GetByID(ctx, rel.VendorID); err == nil {
		vendorName = vendor.CompanyName
	}

	phaseID := phase.ID
	return j.notificationService.Notify(ctx, &domain.Notification{
		UserID:     *rel.AssignedUserID,
		Type:       domain.NotificationTypeFollowUpDue,
		Title:      fmt.Sprintf("Follow up due: %s", phase.PhaseType),
		Message:    fmt.Sprintf("The %s phase for %s on %s is due for follow-up.", phase.PhaseType, vendorName, projectName),
		EntityType: "phase",
		EntityID:   &phaseID,
	})
}

// RegisterFollowUpReminderJob registers the follow-up reminder job with the scheduler.
func RegisterFollowUpReminderJob(
	scheduler *Scheduler,
	job *FollowUpReminderJob,
	cronExpr string,
) error {
	return scheduler.AddJob(FollowUpReminderJobName, cronExpr, job.Run)
}
