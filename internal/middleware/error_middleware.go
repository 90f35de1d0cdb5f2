package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/logger"
)

type errorMapping struct {
	target   error
	status   int
	code     dto.ErrorCode
	fallback string
}

// first match wins. A downstream failure stays a 500 even when its cause
// wraps a not-found or conflict sentinel.
var errorMappings = []errorMapping{
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid login credentials"},
	{apperrors.ErrNotAuthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Not authenticated"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Not authorized"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrDownstream, http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Internal server error"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrDependentRecordsExist, http.StatusConflict, dto.ErrorCodeDependentRecords, "Record is still referenced"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
}

// ErrorStatus returns the HTTP status and error detail for err
func ErrorStatus(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, buildDetail(err, m.code, m.fallback)
		}
	}
	return http.StatusInternalServerError, buildDetail(err, dto.ErrorCodeInternalServer, "Internal server error")
}

func buildDetail(err error, code dto.ErrorCode, fallback string) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(code, apperrors.Message(err, fallback))

	var ce *apperrors.CustomError
	if errors.As(err, &ce) {
		if ce.Field != "" {
			detail = detail.WithField(ce.Field)
		}
		if ce.Details != nil {
			detail = detail.WithDetails(ce.Details)
		}
	}
	return detail
}

// HandleAPIError writes the error response for err
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		detail = detail.WithSeverity(dto.ErrorSeverityCritical)
	} else {
		detail = detail.WithSeverity(dto.ErrorSeverityWarning)
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// NotFoundHandler answers unknown routes in the standard error shape
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
}
