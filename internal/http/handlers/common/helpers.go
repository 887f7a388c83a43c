package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bidworks/backend/internal/dto"
	"github.com/bidworks/backend/internal/http/middleware"
	"github.com/bidworks/backend/internal/pkg/apperror"
	"github.com/bidworks/backend/internal/service"
)

var (
	// ErrNoIdentity возвращается, когда в контексте нет данных авторизации.
	ErrNoIdentity = errors.New("пользователь не найден в контексте")

	// ErrInvalidUUID возвращается при невалидном UUID.
	ErrInvalidUUID = errors.New("неверный формат UUID")
)

// CurrentUser извлекает личность вызывающего из контекста gin.
func CurrentUser(c *gin.Context) (service.AuthContext, error) {
	rawID, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return service.AuthContext{}, ErrNoIdentity
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return service.AuthContext{}, ErrNoIdentity
	}

	rawRole, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return service.AuthContext{}, ErrNoIdentity
	}
	role, ok := rawRole.(string)
	if !ok {
		return service.AuthContext{}, ErrNoIdentity
	}

	return service.AuthContext{UserID: userID, Role: role}, nil
}

// ParseUUIDParam разбирает UUID из параметра пути.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// GetPagination читает limit/offset из query-параметров.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0

	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// RespondError отправляет стандартный ответ с ошибкой.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondAppError разворачивает типизированную ошибку приложения
// в HTTP-ответ. Неизвестные ошибки маскируются как внутренние.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		RespondError(c, appErr.HTTPStatus, appErr.Message)
		return
	}
	RespondError(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// RespondSuccess отправляет стандартный успешный ответ.
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, dto.SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// RespondUnauthorized отправляет 401.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondBadRequest отправляет 400.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}
