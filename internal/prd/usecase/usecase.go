package usecase

import (
	"context"

	authdomain "genprd-backend/internal/auth/domain"
	prddomain "genprd-backend/internal/prd/domain"
	prddto "genprd-backend/internal/prd/dto"
	"genprd-backend/pkg/llm"
	"genprd-backend/pkg/pdf"
)

// Generator is the external content-generation service. Satisfied by
// llm.Client.
type Generator interface {
	GeneratePRD(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error)
}

// Exporter renders a document to PDF and returns the public URL. Satisfied
// by pdf.Generator.
type Exporter interface {
	Generate(ctx context.Context, doc *pdf.Document) (string, error)
}

// PersonnelResolver maps personnel ids to display names for the generation
// payload. Satisfied by the personnel repository.
type PersonnelResolver interface {
	FindNamesByIDs(userID string, ids []string) (map[string]string, error)
}

// UserResolver looks up document owners for rendering. Satisfied by the auth
// user repository.
type UserResolver interface {
	FindUserByID(id string) (*authdomain.User, error)
}

type PRDUsecase interface {
	List(userID string, filter *prddto.ListPRDFilter) ([]*prddomain.PRD, error)
	Get(userID, id string) (*prddomain.PRD, error)
	Recent(userID string) ([]*prddomain.PRD, error)
	Create(ctx context.Context, userID string, req *prddto.CreatePRDRequest) (*prddomain.PRD, error)
	Update(userID, id string, req *prddto.UpdatePRDRequest) (*prddomain.PRD, error)
	Delete(userID, id string) error
	Archive(userID, id string) (*prddomain.PRD, error)
	TogglePin(userID, id string) (*prddomain.PRD, error)
	UpdateStage(userID, id string, stage prddomain.DocumentStage) (*prddomain.PRD, error)
	Download(ctx context.Context, userID, id string) (string, error)
}
