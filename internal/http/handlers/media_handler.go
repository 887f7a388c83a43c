package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidworks/backend/internal/http/handlers/common"
	"github.com/bidworks/backend/internal/models"
	"github.com/bidworks/backend/internal/repository"
	"github.com/bidworks/backend/internal/storage"
)

// MediaHandler отвечает за загрузку и выдачу вложений к результатам работ.
type MediaHandler struct {
	files *storage.FileStorage
	media *repository.MediaRepository
}

// NewMediaHandler создаёт хэндлер.
func NewMediaHandler(files *storage.FileStorage, media *repository.MediaRepository) *MediaHandler {
	return &MediaHandler{files: files, media: media}
}

// Upload обрабатывает POST /api/media.
func (h *MediaHandler) Upload(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "файл обязателен (поле file)")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "не удалось прочитать файл")
		return
	}
	defer src.Close()

	relPath, mimeType, size, err := h.files.Save(c.Request.Context(), actor.UserID, fileHeader.Filename, src)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	file := &models.MediaFile{
		UserID:   actor.UserID,
		FilePath: relPath,
		FileType: mimeType,
		FileSize: size,
	}
	if err := h.media.Create(c.Request.Context(), file); err != nil {
		_ = h.files.Delete(c.Request.Context(), relPath)
		common.RespondError(c, http.StatusInternalServerError, "не удалось сохранить файл")
		return
	}

	c.JSON(http.StatusCreated, file)
}

// Download обрабатывает GET /api/media/:id.
func (h *MediaHandler) Download(c *gin.Context) {
	fileID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	file, err := h.media.GetByID(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			common.RespondError(c, http.StatusNotFound, "файл не найден")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "не удалось загрузить файл")
		return
	}

	f, err := h.files.Open(c.Request.Context(), file.FilePath)
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "файл не найден")
		return
	}
	defer f.Close()

	c.DataFromReader(http.StatusOK, file.FileSize, file.FileType, f, nil)
}

// Delete обрабатывает DELETE /api/media/:id.
func (h *MediaHandler) Delete(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	fileID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	file, err := h.media.GetByID(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			common.RespondError(c, http.StatusNotFound, "файл не найден")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "не удалось загрузить файл")
		return
	}

	if err := h.media.Delete(c.Request.Context(), fileID, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			common.RespondError(c, http.StatusForbidden, "удалять файл может только его владелец")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "не удалось удалить файл")
		return
	}

	_ = h.files.Delete(c.Request.Context(), file.FilePath)
	common.RespondSuccess(c, http.StatusOK, "файл удалён", nil)
}
