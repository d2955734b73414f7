package scheduler

import (
	"context"
	"fmt"
	"time"

	authrepo "genprd-backend/internal/auth/repository"
	prddomain "genprd-backend/internal/prd/domain"
	"genprd-backend/internal/prd/repository"
	"genprd-backend/pkg/fcm"
	"genprd-backend/pkg/logger"
)

// reminderHorizon is how far ahead of a deadline the reminder fires.
const reminderHorizon = 24 * time.Hour

// DeadlineReminderScheduler periodically scans for documents approaching
// their deadline and pushes an FCM notification to the owner's device.
type DeadlineReminderScheduler struct {
	prdRepo   repository.PRDRepository
	userRepo  authrepo.UserRepository
	fcmClient *fcm.Client
	interval  time.Duration
	stopChan  chan struct{}
}

func NewDeadlineReminderScheduler(
	prdRepo repository.PRDRepository,
	userRepo authrepo.UserRepository,
	fcmClient *fcm.Client,
) *DeadlineReminderScheduler {
	return &DeadlineReminderScheduler{
		prdRepo:   prdRepo,
		userRepo:  userRepo,
		fcmClient: fcmClient,
		interval:  time.Minute,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the scheduler loop. It is a no-op when FCM is not configured.
func (s *DeadlineReminderScheduler) Start() {
	if s.fcmClient == nil {
		logger.Log.Info("FCM client not available, deadline reminders disabled")
		return
	}

	logger.Log.WithField("interval", s.interval).Info("starting deadline reminder scheduler")

	go func() {
		s.checkAndSendReminders()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndSendReminders()
			case <-s.stopChan:
				logger.Log.Info("deadline reminder scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *DeadlineReminderScheduler) Stop() {
	close(s.stopChan)
}

func (s *DeadlineReminderScheduler) checkAndSendReminders() {
	horizon := time.Now().Add(reminderHorizon)

	prds, err := s.prdRepo.FindPendingDeadlineReminders(horizon)
	if err != nil {
		logger.Log.WithError(err).Error("failed to scan pending deadline reminders")
		return
	}
	if len(prds) == 0 {
		return
	}

	logger.Log.WithField("count", len(prds)).Info("documents with approaching deadlines")

	for _, prd := range prds {
		s.sendReminder(prd)
	}
}

func (s *DeadlineReminderScheduler) sendReminder(prd *prddomain.PRD) {
	user, err := s.userRepo.FindUserByID(prd.UserID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", prd.UserID).Error("failed to load document owner")
		return
	}

	if user.FCMToken == nil || *user.FCMToken == "" {
		// Nothing to deliver to; mark sent so the scan stops picking it up.
		if err := s.prdRepo.MarkReminderSent(prd.ID); err != nil {
			logger.Log.WithError(err).WithField("prd_id", prd.ID).Error("failed to mark reminder sent")
		}
		return
	}

	notification := fcm.NotificationData{
		Title: "PRD deadline approaching: " + prd.ProductName,
		Body:  fmt.Sprintf("%q is due %s", prd.ProductName, prd.Deadline.Format("Jan 2, 2006 15:04")),
		Data: map[string]string{
			"type":         "prd_deadline_reminder",
			"prd_id":       prd.ID,
			"click_action": "/prds/" + prd.ID,
		},
	}

	if err := s.fcmClient.SendToDevice(context.Background(), *user.FCMToken, notification); err != nil {
		logger.Log.WithError(err).WithField("prd_id", prd.ID).Error("failed to send deadline reminder")
	}

	// Marked sent even on failure so a broken token cannot cause a send loop.
	if err := s.prdRepo.MarkReminderSent(prd.ID); err != nil {
		logger.Log.WithError(err).WithField("prd_id", prd.ID).Error("failed to mark reminder sent")
	}
}
