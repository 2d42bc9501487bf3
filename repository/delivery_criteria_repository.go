package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
)

// DeliveryCriteriaRepository defines data-access operations for local delivery tiers.
type DeliveryCriteriaRepository interface {
	// FindAllSorted returns every tier ordered by ascending max distance.
	FindAllSorted(ctx context.Context) ([]models.DeliveryCriterion, error)
	Create(ctx context.Context, criterion *models.DeliveryCriterion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormDeliveryCriteriaRepository implements DeliveryCriteriaRepository using GORM.
type GormDeliveryCriteriaRepository struct {
	db *gorm.DB
}

// NewGormDeliveryCriteriaRepository creates a new GormDeliveryCriteriaRepository.
func NewGormDeliveryCriteriaRepository(db *gorm.DB) DeliveryCriteriaRepository {
	return &GormDeliveryCriteriaRepository{db: db}
}

func (r *GormDeliveryCriteriaRepository) FindAllSorted(ctx context.Context) ([]models.DeliveryCriterion, error) {
	var criteria []models.DeliveryCriterion
	if err := r.db.WithContext(ctx).
		Order("max_distance ASC").
		Find(&criteria).Error; err != nil {
		return nil, err
	}
	return criteria, nil
}

func (r *GormDeliveryCriteriaRepository) Create(ctx context.Context, criterion *models.DeliveryCriterion) error {
	return r.db.WithContext(ctx).Create(criterion).Error
}

func (r *GormDeliveryCriteriaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.DeliveryCriterion{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
