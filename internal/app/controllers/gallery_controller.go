package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
)

// GalleryController handles gallery items
type GalleryController struct {
	galleryService services.GalleryService
}

// NewGalleryController creates a new GalleryController
func NewGalleryController(galleryService services.GalleryService) *GalleryController {
	return &GalleryController{galleryService: galleryService}
}

// ListItems returns the gallery, newest first
// @Summary List gallery items
// @Tags gallery
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.GalleryItem}
// @Router /gallery [get]
func (c *GalleryController) ListItems(ctx *gin.Context) {
	items, err := c.galleryService.ListItems(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, items)
}

// CreateItem adds a gallery item
// @Summary Create gallery item
// @Tags gallery
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.GalleryForm true "Item"
// @Success 201 {object} dto.APIResponse{data=models.GalleryItem}
// @Failure 400 {object} dto.ErrorResponse "Title and image URL are required"
// @Router /gallery [post]
func (c *GalleryController) CreateItem(ctx *gin.Context) {
	var form dto.GalleryForm
	if !bindForm(ctx, &form, services.MsgGalleryCreateRequired) {
		return
	}

	item, err := c.galleryService.CreateItem(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, item)
}

// UpdateItem replaces a gallery item
// @Summary Update gallery item
// @Tags gallery
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body dto.GalleryForm true "Item"
// @Success 200 {object} dto.APIResponse{data=models.GalleryItem}
// @Failure 404 {object} dto.ErrorResponse "Gallery item not found"
// @Router /gallery/{id} [put]
func (c *GalleryController) UpdateItem(ctx *gin.Context) {
	var form dto.GalleryForm
	if !bindForm(ctx, &form, services.MsgGalleryUpdateRequired) {
		return
	}
	useRouteID(ctx, &form.ID)

	item, err := c.galleryService.UpdateItem(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, item)
}

// DeleteItem removes a gallery item
// @Summary Delete gallery item
// @Tags gallery
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Gallery item not found"
// @Router /gallery/{id} [delete]
func (c *GalleryController) DeleteItem(ctx *gin.Context) {
	form := dto.IDForm{ID: dto.FormValue(ctx.Param("id"))}
	if err := c.galleryService.DeleteItem(ctx.Request.Context(), &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondSuccess(ctx, "Gallery item deleted")
}
