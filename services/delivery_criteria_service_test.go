package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	"github.com/RaiAraujo30/Complete-Physical-Store/repository"
	"github.com/RaiAraujo30/Complete-Physical-Store/services"
)

func TestDeliveryCriteria_List(t *testing.T) {
	svc := services.NewDeliveryCriteriaService(&fakeCriteriaRepo{criteria: standardCriteria()}, zap.NewNop())

	criteria, svcErr := svc.List(context.Background())
	require.Nil(t, svcErr)
	assert.Len(t, criteria, 3)

	empty := services.NewDeliveryCriteriaService(&fakeCriteriaRepo{}, zap.NewNop())
	criteria, svcErr = empty.List(context.Background())
	require.Nil(t, svcErr)
	assert.NotNil(t, criteria)
	assert.Empty(t, criteria)
}

func TestDeliveryCriteria_ListDBError(t *testing.T) {
	svc := services.NewDeliveryCriteriaService(&fakeCriteriaRepo{findErr: errors.New("pg down")}, zap.NewNop())

	_, svcErr := svc.List(context.Background())
	require.NotNil(t, svcErr)
	assert.Equal(t, services.CodeDatabaseError, svcErr.Code)
}

func TestDeliveryCriteria_Create(t *testing.T) {
	svc := services.NewDeliveryCriteriaService(&fakeCriteriaRepo{}, zap.NewNop())

	c, svcErr := svc.Create(context.Background(), &models.CreateDeliveryCriterionRequest{
		MaxDistance:    10,
		DeliveryMethod: "Motoboy",
		DeliveryTime:   "1 business day",
		Price:          15,
	})
	require.Nil(t, svcErr)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Motoboy", c.DeliveryMethod)
}

func TestDeliveryCriteria_Delete(t *testing.T) {
	svc := services.NewDeliveryCriteriaService(&fakeCriteriaRepo{}, zap.NewNop())
	assert.Nil(t, svc.Delete(context.Background(), uuid.NewString()))

	svcErr := svc.Delete(context.Background(), "not-a-uuid")
	require.NotNil(t, svcErr)
	assert.Equal(t, services.CodeDeliveryCriterionNotFound, svcErr.Code)

	missing := services.NewDeliveryCriteriaService(&fakeCriteriaRepo{deleteErr: repository.ErrNotFound}, zap.NewNop())
	svcErr = missing.Delete(context.Background(), uuid.NewString())
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}
