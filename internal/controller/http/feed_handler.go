package http

import (
	"context"
	"net/http"

	"connectly/internal/entity"
	"connectly/internal/usecase"
	"connectly/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FeedUseCase interface {
	GetFeed(ctx context.Context, viewerID string, page int) (*entity.FeedPage, error)
}

type FeedHandler struct {
	feed FeedUseCase
	log  *logger.Logger
}

func NewFeedHandler(feed FeedUseCase, log *logger.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, log: log}
}

// GetFeed godoc
// @Summary Get the personal feed
// @Description Returns posts by authors the caller follows, newest first
// @Tags feed
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Success 200 {object} entity.FeedPage
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	viewerID, _ := callerIdentity(c)

	page := usecase.ParsePage(c.Query("page"))

	feedPage, err := h.feed.GetFeed(c.Request.Context(), viewerID, page)
	if err != nil {
		h.log.Error("get feed for %s: %v", viewerID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedPage)
}
