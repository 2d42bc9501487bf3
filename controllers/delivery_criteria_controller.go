package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	"github.com/RaiAraujo30/Complete-Physical-Store/services"
)

// DeliveryCriteriaController handles HTTP requests for the local delivery table.
type DeliveryCriteriaController struct {
	criteriaService services.DeliveryCriteriaService
}

// NewDeliveryCriteriaController creates a new DeliveryCriteriaController.
func NewDeliveryCriteriaController(svc services.DeliveryCriteriaService) *DeliveryCriteriaController {
	return &DeliveryCriteriaController{criteriaService: svc}
}

// List handles GET /deliveryCriteria
func (dc *DeliveryCriteriaController) List(ctx *gin.Context) {
	criteria, svcErr := dc.criteriaService.List(ctx.Request.Context())
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, criteria)
}

// Create handles POST /deliveryCriteria
func (dc *DeliveryCriteriaController) Create(ctx *gin.Context) {
	var req models.CreateDeliveryCriterionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	criterion, svcErr := dc.criteriaService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, criterion)
}

// Delete handles DELETE /deliveryCriteria/:id
func (dc *DeliveryCriteriaController) Delete(ctx *gin.Context) {
	if svcErr := dc.criteriaService.Delete(ctx.Request.Context(), ctx.Param("id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.Status(http.StatusNoContent)
}
