package repository

import (
	"time"

	prddomain "genprd-backend/internal/prd/domain"
)

// PRDRepository persists documents. Every lookup except the reminder scan is
// scoped to the owning user.
type PRDRepository interface {
	Create(prd *prddomain.PRD) error
	FindByID(userID, id string) (*prddomain.PRD, error)
	FindAllByUser(userID string, stage string) ([]*prddomain.PRD, error)
	FindRecent(userID string, limit int) ([]*prddomain.PRD, error)
	Update(prd *prddomain.PRD) error
	Delete(userID, id string) error
	TouchLastViewed(id string, at time.Time) error

	CountByUser(userID string) (int64, error)
	CountByUserAndStage(userID string, stage prddomain.DocumentStage) (int64, error)
	FindRecentlyUpdated(userID string, limit int) ([]*prddomain.PRD, error)

	// FindPendingDeadlineReminders returns documents whose deadline falls
	// before the horizon and whose reminder has not been sent yet.
	FindPendingDeadlineReminders(horizon time.Time) ([]*prddomain.PRD, error)
	MarkReminderSent(id string) error
}
