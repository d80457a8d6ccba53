package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thereayou/socialnet/internal/handlers/dto"
	"github.com/thereayou/socialnet/internal/middleware"
	"github.com/thereayou/socialnet/internal/services"
)

type AuthHandler struct {
	identity *services.IdentityStore
	gate     *middleware.Gate
}

func NewAuthHandler(identity *services.IdentityStore, gate *middleware.Gate) *AuthHandler {
	return &AuthHandler{identity: identity, gate: gate}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.identity.Register(c.Request.Context(), req.Username, req.FirstName, req.LastName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		ID:       id,
		Username: services.NormalizeUsername(req.Username),
	})
}

// Login выдаёт JWT. Неизвестный пользователь и неверный пароль неразличимы для клиента.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrBadCredential) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	token, err := h.gate.IssueToken(user)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Username: user.Username})
}

// Logout ставит токен в черный список в Redis до истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.gate.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
