package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RaiAraujo30/Complete-Physical-Store/services"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	ErrorCode  string         `json:"errorCode,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

func respondError(ctx *gin.Context, svcErr *services.ServiceError) {
	if svcErr.StatusCode >= http.StatusInternalServerError {
		_ = ctx.Error(svcErr)
	}
	ctx.AbortWithStatusJSON(svcErr.StatusCode, ErrorResponse{
		StatusCode: svcErr.StatusCode,
		Message:    svcErr.Message,
		ErrorCode:  svcErr.Code,
		Details:    svcErr.Details,
	})
}

func respondBindError(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid request",
		ErrorCode:  "VALIDATION_ERROR",
		Details:    map[string]any{"error": err.Error()},
	})
}

// parsePaginationParams extracts limit/offset query params. Invalid values fall
// back to the defaults and limit is capped at maxLimit.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	limit, offset := defaultLimit, 0
	if l, err := strconv.Atoi(ctx.Query("limit")); err == nil && l > 0 {
		limit = min(l, maxLimit)
	}
	if o, err := strconv.Atoi(ctx.Query("offset")); err == nil && o >= 0 {
		offset = o
	}
	return limit, offset
}
