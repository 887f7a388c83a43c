package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bidworks/backend/internal/dto"
	"github.com/bidworks/backend/internal/http/handlers/common"
	"github.com/bidworks/backend/internal/models"
	"github.com/bidworks/backend/internal/service"
	"github.com/bidworks/backend/internal/ws"
)

// ProjectHandler предоставляет HTTP слой для проектов.
type ProjectHandler struct {
	projects *service.ProjectService
	hub      *ws.Hub
}

// NewProjectHandler создаёт хэндлер.
func NewProjectHandler(projects *service.ProjectService, hub *ws.Hub) *ProjectHandler {
	return &ProjectHandler{projects: projects, hub: hub}
}

// Create обрабатывает POST /api/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	deadline, err := time.Parse(time.RFC3339, req.DeadlineAt)
	if err != nil {
		common.RespondBadRequest(c, "deadline_at должен быть в формате RFC3339")
		return
	}

	project, err := h.projects.Create(c.Request.Context(), actor, service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
		DeadlineAt:  deadline,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Get обрабатывает GET /api/projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	project, err := h.projects.Get(c.Request.Context(), projectID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// List обрабатывает GET /api/projects.
func (h *ProjectHandler) List(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	in := service.ListInput{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			common.RespondBadRequest(c, "client_id должен быть валидным UUID")
			return
		}
		in.ClientID = &clientID
	}

	result, err := h.projects.List(c.Request.Context(), in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Projects: result.Projects,
		Total:    result.Total,
		Limit:    limit,
		Offset:   offset,
	})
}

// Update обрабатывает PUT /api/projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
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

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	in := service.UpdateProjectInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
	}
	if req.DeadlineAt != nil {
		deadline, err := time.Parse(time.RFC3339, *req.DeadlineAt)
		if err != nil {
			common.RespondBadRequest(c, "deadline_at должен быть в формате RFC3339")
			return
		}
		in.DeadlineAt = &deadline
	}

	project, err := h.projects.Update(c.Request.Context(), actor, in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete обрабатывает DELETE /api/projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
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

	if err := h.projects.Delete(c.Request.Context(), actor, projectID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "проект удалён", nil)
}

// SubmitDeliverable обрабатывает POST /api/projects/:id/deliverable.
func (h *ProjectHandler) SubmitDeliverable(c *gin.Context) {
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

	var req dto.SubmitDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	project, err := h.projects.SubmitDeliverable(c.Request.Context(), actor, projectID, models.Deliverable{
		Description: req.Description,
		Files:       req.Files,
		Notes:       req.Notes,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if h.hub != nil {
		_ = h.hub.Notify(project.ClientID, ws.EventDeliverableSubmitted, project)
	}

	c.JSON(http.StatusOK, project)
}

// Close обрабатывает POST /api/projects/:id/close.
func (h *ProjectHandler) Close(c *gin.Context) {
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

	project, err := h.projects.Close(c.Request.Context(), actor, projectID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ConfirmCompletion обрабатывает POST /api/projects/:id/complete.
func (h *ProjectHandler) ConfirmCompletion(c *gin.Context) {
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

	project, err := h.projects.ConfirmCompletion(c.Request.Context(), actor, projectID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if h.hub != nil && project.AwardedTo != nil {
		_ = h.hub.Notify(*project.AwardedTo, ws.EventProjectCompleted, project)
	}

	c.JSON(http.StatusOK, project)
}
