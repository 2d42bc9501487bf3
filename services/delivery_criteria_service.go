package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	"github.com/RaiAraujo30/Complete-Physical-Store/repository"
)

// DeliveryCriteriaService manages the local delivery price table.
type DeliveryCriteriaService interface {
	List(ctx context.Context) ([]models.DeliveryCriterion, *ServiceError)
	Create(ctx context.Context, req *models.CreateDeliveryCriterionRequest) (*models.DeliveryCriterion, *ServiceError)
	Delete(ctx context.Context, id string) *ServiceError
}

type deliveryCriteriaServiceImpl struct {
	repo   repository.DeliveryCriteriaRepository
	logger *zap.Logger
}

// NewDeliveryCriteriaService creates a new DeliveryCriteriaService.
func NewDeliveryCriteriaService(repo repository.DeliveryCriteriaRepository, logger *zap.Logger) DeliveryCriteriaService {
	return &deliveryCriteriaServiceImpl{repo: repo, logger: logger}
}

func (s *deliveryCriteriaServiceImpl) List(ctx context.Context) ([]models.DeliveryCriterion, *ServiceError) {
	criteria, err := s.repo.FindAllSorted(ctx)
	if err != nil {
		s.logger.Error("List delivery criteria failed", zap.Error(err))
		return nil, ErrDatabase("find delivery criteria", err)
	}
	if criteria == nil {
		criteria = []models.DeliveryCriterion{}
	}
	return criteria, nil
}

func (s *deliveryCriteriaServiceImpl) Create(ctx context.Context, req *models.CreateDeliveryCriterionRequest) (*models.DeliveryCriterion, *ServiceError) {
	criterion := &models.DeliveryCriterion{
		MaxDistance:    req.MaxDistance,
		DeliveryMethod: req.DeliveryMethod,
		DeliveryTime:   req.DeliveryTime,
		Price:          req.Price,
	}
	if err := s.repo.Create(ctx, criterion); err != nil {
		s.logger.Error("Create delivery criterion failed", zap.Error(err))
		return nil, ErrDatabase("create delivery criterion", err)
	}
	return criterion, nil
}

func (s *deliveryCriteriaServiceImpl) Delete(ctx context.Context, id string) *ServiceError {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrDeliveryCriterionNotFound(id)
	}
	err = s.repo.Delete(ctx, parsed)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDeliveryCriterionNotFound(id)
	}
	if err != nil {
		s.logger.Error("Delete delivery criterion failed", zap.String("id", id), zap.Error(err))
		return ErrDatabase("delete delivery criterion", err)
	}
	return nil
}
