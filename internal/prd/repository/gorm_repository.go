package repository

import (
	"errors"
	"time"

	prddomain "genprd-backend/internal/prd/domain"
	"genprd-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormPRDRepository struct {
	db *gorm.DB
}

func NewGormPRDRepository(db *gorm.DB) PRDRepository {
	return &gormPRDRepository{db: db}
}

func (r *gormPRDRepository) Create(prd *prddomain.PRD) error {
	if prd.ID == "" {
		prd.ID = uuid.New().String()
	}
	prd.CreatedAt = time.Now()
	prd.UpdatedAt = time.Now()
	return r.db.Create(prd).Error
}

func (r *gormPRDRepository) FindByID(userID, id string) (*prddomain.PRD, error) {
	var prd prddomain.PRD
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&prd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &prd, nil
}

func (r *gormPRDRepository) FindAllByUser(userID string, stage string) ([]*prddomain.PRD, error) {
	var prds []*prddomain.PRD
	query := r.db.Where("user_id = ?", userID)
	if stage != "" {
		query = query.Where("document_stage = ?", stage)
	}
	err := query.Order("is_pinned DESC, updated_at DESC").Find(&prds).Error
	return prds, err
}

func (r *gormPRDRepository) FindRecent(userID string, limit int) ([]*prddomain.PRD, error) {
	var prds []*prddomain.PRD
	err := r.db.Where("user_id = ? AND last_viewed_at IS NOT NULL", userID).
		Order("last_viewed_at DESC").
		Limit(limit).
		Find(&prds).Error
	return prds, err
}

func (r *gormPRDRepository) Update(prd *prddomain.PRD) error {
	prd.UpdatedAt = time.Now()
	return r.db.Save(prd).Error
}

func (r *gormPRDRepository) Delete(userID, id string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&prddomain.PRD{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *gormPRDRepository) TouchLastViewed(id string, at time.Time) error {
	return r.db.Model(&prddomain.PRD{}).Where("id = ?", id).
		Update("last_viewed_at", at).Error
}

func (r *gormPRDRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&prddomain.PRD{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *gormPRDRepository) CountByUserAndStage(userID string, stage prddomain.DocumentStage) (int64, error) {
	var count int64
	err := r.db.Model(&prddomain.PRD{}).
		Where("user_id = ? AND document_stage = ?", userID, stage).
		Count(&count).Error
	return count, err
}

func (r *gormPRDRepository) FindRecentlyUpdated(userID string, limit int) ([]*prddomain.PRD, error) {
	var prds []*prddomain.PRD
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&prds).Error
	return prds, err
}

func (r *gormPRDRepository) FindPendingDeadlineReminders(horizon time.Time) ([]*prddomain.PRD, error) {
	var prds []*prddomain.PRD
	err := r.db.Where(
		"deadline IS NOT NULL AND deadline <= ? AND reminder_sent = ? AND document_stage NOT IN ?",
		horizon, false, []prddomain.DocumentStage{prddomain.StageFinished, prddomain.StageArchived},
	).Find(&prds).Error
	return prds, err
}

func (r *gormPRDRepository) MarkReminderSent(id string) error {
	return r.db.Model(&prddomain.PRD{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
}
