package repository

import (
	personneldomain "genprd-backend/internal/personnel/domain"
)

// PersonnelRepository persists personnel records, all scoped to the owning
// user.
type PersonnelRepository interface {
	Create(p *personneldomain.Personnel) error
	FindByID(userID, id string) (*personneldomain.Personnel, error)
	FindAllByUser(userID string) ([]*personneldomain.Personnel, error)
	Update(p *personneldomain.Personnel) error
	Delete(userID, id string) error
	CountByUser(userID string) (int64, error)

	// FindNamesByIDs resolves ids to display names. Unknown ids are simply
	// absent from the result.
	FindNamesByIDs(userID string, ids []string) (map[string]string, error)
}
