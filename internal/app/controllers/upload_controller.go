package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
)

// UploadController stores images and documents referenced by content forms
type UploadController struct {
	uploadService services.UploadService
}

// NewUploadController creates a new UploadController
func NewUploadController(uploadService services.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// UploadImage stores an image, downscaling large ones
// @Summary Upload image
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Unsupported file type"
// @Router /uploads/images [post]
func (c *UploadController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, missingFile(err))
		return
	}

	resp, err := c.uploadService.UploadImage(ctx.Request.Context(), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp)
}

// UploadDocument stores a report attachment
// @Summary Upload document
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "File is too large"
// @Router /uploads/files [post]
func (c *UploadController) UploadDocument(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, missingFile(err))
		return
	}

	resp, err := c.uploadService.UploadDocument(ctx.Request.Context(), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp)
}

func missingFile(err error) error {
	if errors.Is(err, http.ErrMissingFile) {
		return apperrors.NewValidationError(services.MsgFileRequired).WithField("file")
	}
	return apperrors.NewValidationError(services.MsgFileRequired).WithDetails(map[string]interface{}{"reason": err.Error()})
}
