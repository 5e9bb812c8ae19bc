// Package controller holds the helpers shared by the recruiter and candidate
// HTTP controllers.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/middleware"
	"github.com/rs/zerolog/log"
)

// StatusFor maps a service error to its HTTP status. Errors that are not
// *apperr.Error are internal failures.
func StatusFor(err error) int {
	e, ok := apperr.As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeUnauthorized:
		return http.StatusForbidden
	case apperr.CodeConflict:
		return http.StatusConflict
	case apperr.CodeConfiguration:
		return http.StatusUnprocessableEntity
	case apperr.CodeInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a dto.ErrorResponse. Internal errors are logged and
// reported with the generic message only.
func RespondError(ctx *gin.Context, err error, message string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(message)
		_ = ctx.Error(err)
		ctx.JSON(status, dto.ErrorResponse{Message: message})
		return
	}
	e, _ := apperr.As(err)
	log.Warn().Err(err).Str("code", string(e.Code)).Str("path", ctx.FullPath()).Msg(message)
	ctx.JSON(status, dto.ErrorResponse{Message: e.Message, Details: e.Details})
}

// BindError reports a malformed request body.
func BindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// UintParam parses a numeric path parameter, answering 400 when it is malformed.
func UintParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// CurrentUser returns the authenticated caller, answering 401 when the request
// bypassed the auth middleware.
func CurrentUser(ctx *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return 0, false
	}
	return id, true
}
