package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	"github.com/RaiAraujo30/Complete-Physical-Store/services"
)

// StoreController handles HTTP requests for stores and shipping resolution.
type StoreController struct {
	storeService services.StoreService
}

// NewStoreController creates a new StoreController.
func NewStoreController(svc services.StoreService) *StoreController {
	return &StoreController{storeService: svc}
}

// Create handles POST /store
func (sc *StoreController) Create(ctx *gin.Context) {
	var req models.CreateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	store, svcErr := sc.storeService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, store)
}

// List handles GET /store
func (sc *StoreController) List(ctx *gin.Context) {
	limit, offset := parsePaginationParams(ctx)
	res, svcErr := sc.storeService.List(ctx.Request.Context(), limit, offset)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// FindByID handles GET /store/:id
func (sc *StoreController) FindByID(ctx *gin.Context) {
	res, svcErr := sc.storeService.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// FindByState handles GET /store/state/:state
func (sc *StoreController) FindByState(ctx *gin.Context) {
	limit, offset := parsePaginationParams(ctx)
	res, svcErr := sc.storeService.FindByState(ctx.Request.Context(), ctx.Param("state"), limit, offset)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// Update handles PUT /store/:id
func (sc *StoreController) Update(ctx *gin.Context) {
	var req models.UpdateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	store, svcErr := sc.storeService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, store)
}

// Delete handles DELETE /store/:id
func (sc *StoreController) Delete(ctx *gin.Context) {
	store, svcErr := sc.storeService.Delete(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, store)
}

// GetStoresWithShipping handles GET /store/shipping/:cep
func (sc *StoreController) GetStoresWithShipping(ctx *gin.Context) {
	limit, offset := parsePaginationParams(ctx)
	res, svcErr := sc.storeService.GetStoresWithShipping(ctx.Request.Context(), ctx.Param("cep"), limit, offset)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, res)
}
