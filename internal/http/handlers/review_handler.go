package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidworks/backend/internal/dto"
	"github.com/bidworks/backend/internal/http/handlers/common"
	"github.com/bidworks/backend/internal/service"
)

// ReviewHandler предоставляет HTTP слой для отзывов.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler создаёт хэндлер.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create обрабатывает POST /api/projects/:id/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), actor, service.CreateReviewInput{
		ProjectID: projectID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListByUser обрабатывает GET /api/users/:id/reviews.
func (h *ReviewHandler) ListByUser(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)

	reviews, err := h.reviews.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReviewListResponse{
		Reviews: reviews,
		Limit:   limit,
		Offset:  offset,
	})
}
