package repository

import (
	"errors"
	"time"

	personneldomain "genprd-backend/internal/personnel/domain"
	"genprd-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormPersonnelRepository struct {
	db *gorm.DB
}

func NewGormPersonnelRepository(db *gorm.DB) PersonnelRepository {
	return &gormPersonnelRepository{db: db}
}

func (r *gormPersonnelRepository) Create(p *personneldomain.Personnel) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return r.db.Create(p).Error
}

func (r *gormPersonnelRepository) FindByID(userID, id string) (*personneldomain.Personnel, error) {
	var p personneldomain.Personnel
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormPersonnelRepository) FindAllByUser(userID string) ([]*personneldomain.Personnel, error) {
	var people []*personneldomain.Personnel
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&people).Error
	return people, err
}

func (r *gormPersonnelRepository) Update(p *personneldomain.Personnel) error {
	p.UpdatedAt = time.Now()
	return r.db.Save(p).Error
}

func (r *gormPersonnelRepository) Delete(userID, id string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&personneldomain.Personnel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *gormPersonnelRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&personneldomain.Personnel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *gormPersonnelRepository) FindNamesByIDs(userID string, ids []string) (map[string]string, error) {
	names := map[string]string{}
	if len(ids) == 0 {
		return names, nil
	}

	var people []*personneldomain.Personnel
	err := r.db.Select("id", "name").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&people).Error
	if err != nil {
		return nil, err
	}

	for _, p := range people {
		names[p.ID] = p.Name
	}
	return names, nil
}
