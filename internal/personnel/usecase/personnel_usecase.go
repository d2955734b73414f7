package usecase

import (
	personneldomain "genprd-backend/internal/personnel/domain"
	personneldto "genprd-backend/internal/personnel/dto"
	"genprd-backend/internal/personnel/repository"
)

type PersonnelUsecase interface {
	List(userID string) ([]*personneldomain.Personnel, error)
	Get(userID, id string) (*personneldomain.Personnel, error)
	Create(userID string, req *personneldto.CreatePersonnelRequest) (*personneldomain.Personnel, error)
	Update(userID, id string, req *personneldto.UpdatePersonnelRequest) (*personneldomain.Personnel, error)
	Delete(userID, id string) error
}

type personnelUsecase struct {
	repo repository.PersonnelRepository
}

func NewPersonnelUsecase(repo repository.PersonnelRepository) PersonnelUsecase {
	return &personnelUsecase{repo: repo}
}

func (u *personnelUsecase) List(userID string) ([]*personneldomain.Personnel, error) {
	return u.repo.FindAllByUser(userID)
}

func (u *personnelUsecase) Get(userID, id string) (*personneldomain.Personnel, error) {
	return u.repo.FindByID(userID, id)
}

func (u *personnelUsecase) Create(userID string, req *personneldto.CreatePersonnelRequest) (*personneldomain.Personnel, error) {
	p := &personneldomain.Personnel{
		UserID:  userID,
		Name:    req.Name,
		Role:    req.Role,
		Contact: req.Contact,
	}
	if err := u.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *personnelUsecase) Update(userID, id string, req *personneldto.UpdatePersonnelRequest) (*personneldomain.Personnel, error) {
	p, err := u.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	if req.Contact != nil {
		p.Contact = *req.Contact
	}

	if err := u.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *personnelUsecase) Delete(userID, id string) error {
	return u.repo.Delete(userID, id)
}
