package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/socialnet/internal/handlers/dto"
	"github.com/thereayou/socialnet/internal/middleware"
	"github.com/thereayou/socialnet/internal/services"
	ws "github.com/thereayou/socialnet/internal/websocket"
)

type FriendsHandler struct {
	graph    *services.SocialGraph
	identity *services.IdentityStore
	notify   notifier
}

func NewFriendsHandler(graph *services.SocialGraph, identity *services.IdentityStore, hub *ws.Hub) *FriendsHandler {
	return &FriendsHandler{
		graph:    graph,
		identity: identity,
		notify:   notifier{hub: hub, graph: graph},
	}
}

// GetFriends возвращает пользователей, которых добавил текущий пользователь
func (h *FriendsHandler) GetFriends(c *gin.Context) {
	user := middleware.CurrentUser(c)

	friends, err := h.graph.ListFriends(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.FriendsResponse{
		Username: user.Username,
		Friends:  make([]dto.UserInfo, 0, len(friends)),
	}
	for i := range friends {
		resp.Friends = append(resp.Friends, formatUser(&friends[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FriendsHandler) AddFriend(c *gin.Context) {
	var req dto.AddFriendRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	if err := h.graph.AddFriend(ctx, user.ID, req.Username); err != nil {
		respondError(c, err)
		return
	}

	// Новая связь открывает ленту добавленного пользователя для его клиентов
	if friend, err := h.identity.UserByUsername(ctx, req.Username); err == nil {
		h.notify.send([]uint{friend.ID}, ws.TypeFriendAdded, user.ID, formatUser(user))
	}

	c.JSON(http.StatusCreated, gin.H{"message": "friend added"})
}
