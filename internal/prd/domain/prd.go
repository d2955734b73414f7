package domain

import "time"

// DocumentStage tracks a PRD through its lifecycle.
type DocumentStage string

const (
	StageDraft      DocumentStage = "draft"
	StageInProgress DocumentStage = "inprogress"
	StageFinished   DocumentStage = "finished"
	StageArchived   DocumentStage = "archived"
)

// ValidStage reports whether s is one of the known document stages.
func ValidStage(s DocumentStage) bool {
	switch s {
	case StageDraft, StageInProgress, StageFinished, StageArchived:
		return true
	}
	return false
}

// PRD is a product requirements document. Personnel assignments and the
// generated content live in JSON columns; they are read and written as whole
// documents, never queried into.
type PRD struct {
	ID                string        `json:"id" gorm:"primaryKey"`
	UserID            string        `json:"user_id" gorm:"index;not null"`
	DocumentVersion   string        `json:"document_version" gorm:"not null"`
	DocumentStage     DocumentStage `json:"document_stage" gorm:"not null;default:draft"`
	ProductName       string        `json:"product_name" gorm:"not null"`
	ProjectOverview   string        `json:"project_overview" gorm:"type:text"`
	StartDate         string        `json:"start_date"`
	EndDate           string        `json:"end_date"`
	Deadline          *time.Time    `json:"deadline,omitempty"`
	DocumentOwners    StringList    `json:"document_owners"`
	Developers        StringList    `json:"developers"`
	Stakeholders      StringList    `json:"stakeholders"`
	DarciRoles        JSONMap       `json:"darci_roles"`
	GeneratedSections JSONMap       `json:"generated_sections"`
	Timeline          JSONMap       `json:"timeline"`
	IsPinned          bool          `json:"is_pinned" gorm:"not null;default:false"`
	ReminderSent      bool          `json:"-" gorm:"not null;default:false"`
	LastViewedAt      *time.Time    `json:"last_viewed_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
