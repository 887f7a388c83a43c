package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidworks/backend/internal/dto"
	"github.com/bidworks/backend/internal/http/handlers/common"
	"github.com/bidworks/backend/internal/service"
)

// AuthHandler предоставляет HTTP слой для регистрации и логина.
// Токен выдаётся в HTTP-only cookie и дублируется в теле ответа
// для клиентов без cookie.
type AuthHandler struct {
	auth         *service.AuthService
	tokens       *service.TokenManager
	cookieName   string
	cookieSecure bool
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService, tokens *service.TokenManager, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		tokens:       tokens,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.cookieSecure, true)
}

// Register обрабатывает POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Role:     req.Role,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	h.setAuthCookie(c, result.Token)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:  result.User,
		Token: result.Token,
	})
}

// Login обрабатывает POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	h.setAuthCookie(c, result.Token)
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  result.User,
		Token: result.Token,
	})
}

// Logout обрабатывает POST /auth/logout: стирает cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	common.RespondSuccess(c, http.StatusOK, "вы вышли из системы", nil)
}

// Me обрабатывает GET /api/me: профиль вызывающего с рейтингом.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	user, rating, err := h.auth.Profile(c.Request.Context(), actor.UserID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{User: user, Rating: rating})
}

// DeleteUser обрабатывает DELETE /api/users/:id (только администратор).
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.auth.DeleteUser(c.Request.Context(), actor.Role, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "пользователь удалён", nil)
}
