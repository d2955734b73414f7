package usecase

import (
	prddomain "genprd-backend/internal/prd/domain"
)

const recentlyUpdatedLimit = 3

// PRDCounter is the slice of the document repository the dashboard reads.
type PRDCounter interface {
	CountByUser(userID string) (int64, error)
	CountByUserAndStage(userID string, stage prddomain.DocumentStage) (int64, error)
	FindRecentlyUpdated(userID string, limit int) ([]*prddomain.PRD, error)
}

// PersonnelCounter is the slice of the personnel repository the dashboard
// reads.
type PersonnelCounter interface {
	CountByUser(userID string) (int64, error)
}

// Summary is the per-user dashboard payload.
type Summary struct {
	Counts     Counts           `json:"counts"`
	RecentPRDs []*prddomain.PRD `json:"recent_prds"`
}

type Counts struct {
	TotalPRD       int64 `json:"totalPRD"`
	TotalPersonnel int64 `json:"totalPersonnel"`
	Draft          int64 `json:"draft"`
	InProgress     int64 `json:"inprogress"`
	Finished       int64 `json:"finished"`
	Archived       int64 `json:"archived"`
}

type DashboardUsecase interface {
	Summary(userID string) (*Summary, error)
}

type dashboardUsecase struct {
	prds      PRDCounter
	personnel PersonnelCounter
}

func NewDashboardUsecase(prds PRDCounter, personnel PersonnelCounter) DashboardUsecase {
	return &dashboardUsecase{prds: prds, personnel: personnel}
}

func (u *dashboardUsecase) Summary(userID string) (*Summary, error) {
	totalPRD, err := u.prds.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	totalPersonnel, err := u.personnel.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	counts := Counts{TotalPRD: totalPRD, TotalPersonnel: totalPersonnel}
	for stage, target := range map[prddomain.DocumentStage]*int64{
		prddomain.StageDraft:      &counts.Draft,
		prddomain.StageInProgress: &counts.InProgress,
		prddomain.StageFinished:   &counts.Finished,
		prddomain.StageArchived:   &counts.Archived,
	} {
		n, err := u.prds.CountByUserAndStage(userID, stage)
		if err != nil {
			return nil, err
		}
		*target = n
	}

	recent, err := u.prds.FindRecentlyUpdated(userID, recentlyUpdatedLimit)
	if err != nil {
		return nil, err
	}

	return &Summary{Counts: counts, RecentPRDs: recent}, nil
}
