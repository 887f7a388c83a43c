package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidworks/backend/internal/dto"
	"github.com/bidworks/backend/internal/http/handlers/common"
	"github.com/bidworks/backend/internal/service"
	"github.com/bidworks/backend/internal/ws"
)

// BidHandler предоставляет HTTP слой для ставок, включая принятие
// ставки владельцем проекта.
type BidHandler struct {
	bids     *service.BidService
	projects *service.ProjectService
	hub      *ws.Hub
}

// NewBidHandler создаёт хэндлер.
func NewBidHandler(bids *service.BidService, projects *service.ProjectService, hub *ws.Hub) *BidHandler {
	return &BidHandler{bids: bids, projects: projects, hub: hub}
}

// Place обрабатывает POST /api/projects/:id/bids.
func (h *BidHandler) Place(c *gin.Context) {
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

	var req dto.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	bid, err := h.bids.Place(c.Request.Context(), actor, service.PlaceBidInput{
		ProjectID:   projectID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if h.hub != nil {
		if project, err := h.projects.Get(c.Request.Context(), projectID); err == nil {
			_ = h.hub.Notify(project.ClientID, ws.EventBidPlaced, bid)
		}
	}

	c.JSON(http.StatusCreated, bid)
}

// ListByProject обрабатывает GET /api/projects/:id/bids.
func (h *BidHandler) ListByProject(c *gin.Context) {
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

	limit, offset := common.GetPagination(c)

	bids, total, err := h.bids.ListByProject(c.Request.Context(), actor, projectID, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BidListResponse{
		Bids:   bids,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// ListMy обрабатывает GET /api/bids/my.
func (h *BidHandler) ListMy(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit, offset := common.GetPagination(c)

	bids, total, err := h.bids.ListMy(c.Request.Context(), actor, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BidListResponse{
		Bids:   bids,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Update обрабатывает PUT /api/bids/:id.
func (h *BidHandler) Update(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	bidID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	bid, err := h.bids.Update(c.Request.Context(), actor, service.UpdateBidInput{
		BidID:       bidID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, bid)
}

// Delete обрабатывает DELETE /api/bids/:id.
func (h *BidHandler) Delete(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	bidID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.bids.Delete(c.Request.Context(), actor, bidID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "ставка удалена", nil)
}

// Award обрабатывает POST /api/bids/:id/award.
// Принятие ставки, перевод проекта в in_progress и отклонение
// остальных ставок выполняются одной транзакцией.
func (h *BidHandler) Award(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	bidID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.bids.Award(c.Request.Context(), actor, bidID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if h.hub != nil {
		_ = h.hub.Notify(result.Bid.FreelancerID, ws.EventBidAwarded, result.Bid)
	}

	c.JSON(http.StatusOK, dto.AwardResponse{
		Bid:     result.Bid,
		Project: result.Project,
	})
}
