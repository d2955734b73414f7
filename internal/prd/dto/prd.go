package dto

import (
	"time"

	prddomain "genprd-backend/internal/prd/domain"
)

// CreatePRDRequest creates a document. When Generate is set the personnel
// ids are resolved to names and the skeleton is sent to the generation
// service; otherwise the document is stored as provided.
type CreatePRDRequest struct {
	ProductName     string               `json:"product_name" binding:"required"`
	DocumentVersion string               `json:"document_version"`
	ProjectOverview string               `json:"project_overview" binding:"required"`
	StartDate       string               `json:"start_date" binding:"required"`
	EndDate         string               `json:"end_date" binding:"required"`
	Deadline        *time.Time           `json:"deadline,omitempty"`
	Generate        bool                 `json:"generate"`
	DocumentOwners  []string             `json:"document_owners"`
	Developers      []string             `json:"developers"`
	Stakeholders    []string             `json:"stakeholders"`
	DarciRoles      map[string][]string  `json:"darci_roles"`
	// Pre-built content for plain (non-generated) creates.
	GeneratedSections prddomain.JSONMap `json:"generated_sections"`
	Timeline          prddomain.JSONMap `json:"timeline"`
}

// UpdatePRDRequest is a partial update; nil fields stay untouched.
type UpdatePRDRequest struct {
	ProductName       *string                   `json:"product_name"`
	DocumentVersion   *string                   `json:"document_version"`
	DocumentStage     *prddomain.DocumentStage  `json:"document_stage"`
	ProjectOverview   *string                   `json:"project_overview"`
	StartDate         *string                   `json:"start_date"`
	EndDate           *string                   `json:"end_date"`
	Deadline          *time.Time                `json:"deadline"`
	DocumentOwners    *prddomain.StringList     `json:"document_owners"`
	Developers        *prddomain.StringList     `json:"developers"`
	Stakeholders      *prddomain.StringList     `json:"stakeholders"`
	DarciRoles        *prddomain.JSONMap        `json:"darci_roles"`
	GeneratedSections *prddomain.JSONMap        `json:"generated_sections"`
	Timeline          *prddomain.JSONMap        `json:"timeline"`
}

type UpdateStageRequest struct {
	DocumentStage prddomain.DocumentStage `json:"document_stage" binding:"required"`
}

type ListPRDFilter struct {
	Stage string
}
