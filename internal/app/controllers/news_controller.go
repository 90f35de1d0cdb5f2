package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
	"github.com/yigit/campusportal/internal/pkg/helpers"
)

// NewsController handles news articles
type NewsController struct {
	newsService services.NewsService
}

// NewNewsController creates a new NewsController
func NewNewsController(newsService services.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

// ListNews returns a page of articles, newest first
// @Summary List news
// @Tags news
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param limit query int false "Alias of size"
// @Success 200 {object} dto.APIResponse{data=dto.NewsListResponse}
// @Router /news [get]
func (c *NewsController) ListNews(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	news, err := c.newsService.ListNews(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, news)
}

// GetNews returns one article
// @Summary Get news article
// @Tags news
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} dto.APIResponse{data=models.News}
// @Failure 404 {object} dto.ErrorResponse "News article not found"
// @Router /news/{id} [get]
func (c *NewsController) GetNews(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	news, err := c.newsService.GetNews(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, news)
}

// CreateNews publishes an article
// @Summary Create news article
// @Tags news
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.NewsForm true "Article"
// @Success 201 {object} dto.APIResponse{data=models.News}
// @Failure 400 {object} dto.ErrorResponse "Title and content are required"
// @Router /news [post]
func (c *NewsController) CreateNews(ctx *gin.Context) {
	var form dto.NewsForm
	if !bindForm(ctx, &form, services.MsgNewsCreateRequired) {
		return
	}

	news, err := c.newsService.CreateNews(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, news)
}

// UpdateNews replaces an article
// @Summary Update news article
// @Tags news
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Param request body dto.NewsForm true "Article"
// @Success 200 {object} dto.APIResponse{data=models.News}
// @Failure 400 {object} dto.ErrorResponse "ID, title, and content are required"
// @Failure 404 {object} dto.ErrorResponse "News article not found"
// @Router /news/{id} [put]
func (c *NewsController) UpdateNews(ctx *gin.Context) {
	var form dto.NewsForm
	if !bindForm(ctx, &form, services.MsgNewsUpdateRequired) {
		return
	}
	useRouteID(ctx, &form.ID)

	news, err := c.newsService.UpdateNews(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, news)
}

// DeleteNews removes an article
// @Summary Delete news article
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "News article not found"
// @Router /news/{id} [delete]
func (c *NewsController) DeleteNews(ctx *gin.Context) {
	form := dto.IDForm{ID: dto.FormValue(ctx.Param("id"))}
	if err := c.newsService.DeleteNews(ctx.Request.Context(), &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondSuccess(ctx, "News article deleted")
}
