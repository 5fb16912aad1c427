package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/service"
	"github.com/dcastano/evalia/internal/store"
)

// respondError maps domain failures onto HTTP statuses: misses to 404,
// structural errors to 400, recoverable rejections to a code-specific 4xx
// and anything else to 500.
func respondError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "resource not found"})
		return
	}
	if errors.Is(err, store.ErrInvalidCollection) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if rej, ok := service.AsRejection(err); ok {
		ctx.JSON(rejectionStatus(rej.Code), dto.ErrorResponse{Message: rej.Reason, Code: rej.Code})
		return
	}
	log.Error().Err(err).Str("path", ctx.FullPath()).Msg("unhandled service error")
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
}

func rejectionStatus(code string) int {
	switch code {
	case service.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case service.CodeNotOwner:
		return http.StatusForbidden
	case service.CodeDuplicateUsername, service.CodeDuplicateAssignment,
		service.CodeAssignmentCompleted, service.CodeAssignmentExpired:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func bindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "Invalid request body",
		Details: []string{err.Error()},
	})
}
