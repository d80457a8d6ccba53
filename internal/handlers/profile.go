package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/socialnet/internal/handlers/dto"
	"github.com/thereayou/socialnet/internal/middleware"
	"github.com/thereayou/socialnet/internal/models"
	"github.com/thereayou/socialnet/internal/services"
)

type ProfileHandler struct {
	identity *services.IdentityStore
}

func NewProfileHandler(identity *services.IdentityStore) *ProfileHandler {
	return &ProfileHandler{identity: identity}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, formatProfile(middleware.CurrentUser(c)))
}

// UpdateProfile перезаписывает все шесть полей профиля
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	err := h.identity.UpdateProfile(ctx, user.Username, models.Profile{
		Education:   req.Education,
		Employment:  req.Employment,
		Music:       req.Music,
		Movie:       req.Movie,
		Nationality: req.Nationality,
		Birthday:    req.Birthday,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.identity.UserByID(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, formatProfile(updated))
}
