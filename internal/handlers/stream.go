package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thereayou/socialnet/internal/handlers/dto"
	"github.com/thereayou/socialnet/internal/middleware"
	"github.com/thereayou/socialnet/internal/services"
	ws "github.com/thereayou/socialnet/internal/websocket"
)

// StreamHandler отдаёт ленту пользователя и публикует посты
type StreamHandler struct {
	feed    *services.FeedAssembler
	content *services.ContentStore
	notify  notifier
}

func NewStreamHandler(feed *services.FeedAssembler, content *services.ContentStore, graph *services.SocialGraph, hub *ws.Hub) *StreamHandler {
	return &StreamHandler{
		feed:    feed,
		content: content,
		notify:  notifier{hub: hub, graph: graph},
	}
}

// GetStream возвращает ленту текущего пользователя
func (h *StreamHandler) GetStream(c *gin.Context) {
	user := middleware.CurrentUser(c)

	entries, err := h.feed.Feed(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	posts := make([]dto.PostResponse, 0, len(entries))
	for _, entry := range entries {
		posts = append(posts, formatFeedEntry(entry))
	}

	c.JSON(http.StatusOK, dto.StreamResponse{Username: user.Username, Posts: posts})
}

// CreatePost принимает multipart форму с текстом и необязательным изображением
func (h *StreamHandler) CreatePost(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var attachment *services.Attachment
	header, err := c.FormFile("image")
	switch {
	case err == nil:
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image"})
			return
		}
		defer file.Close()
		attachment = &services.Attachment{Filename: header.Filename, Body: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id, err := h.content.CreatePost(ctx, user.ID, req.Content, attachment)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info().Uint("post_id", id).Uint("user_id", user.ID).Bool("image", attachment != nil).Msg("post created")

	if post, err := h.content.PostByID(ctx, id); err == nil {
		h.notify.publish(ctx, user.ID, ws.TypePostCreated, user.ID, formatPost(post))
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}
