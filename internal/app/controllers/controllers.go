// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/middleware"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
)

// bindForm binds a JSON, urlencoded or multipart body into obj. Any binding
// failure is reported with the action's form message.
func bindForm(ctx *gin.Context, obj interface{}, message string) bool {
	if err := ctx.ShouldBind(obj); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err, message))
		return false
	}
	return true
}

// pathID parses a numeric :id path parameter
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid "+name).WithField(name))
		return 0, false
	}
	return id, true
}

// useRouteID makes the :id path segment authoritative over a body id
func useRouteID(ctx *gin.Context, field *dto.FormValue) {
	if id := ctx.Param("id"); id != "" {
		*field = dto.FormValue(id)
	}
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewAPIResponse(data))
}

func respondSuccess(ctx *gin.Context, message string) {
	respond(ctx, http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}
