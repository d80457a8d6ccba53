package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/socialnet/internal/handlers/dto"
	"github.com/thereayou/socialnet/internal/middleware"
	"github.com/thereayou/socialnet/internal/services"
	ws "github.com/thereayou/socialnet/internal/websocket"
)

type CommentsHandler struct {
	content *services.ContentStore
	notify  notifier
}

func NewCommentsHandler(content *services.ContentStore, graph *services.SocialGraph, hub *ws.Hub) *CommentsHandler {
	return &CommentsHandler{
		content: content,
		notify:  notifier{hub: hub, graph: graph},
	}
}

// GetComments возвращает пост вместе с автором и комментариями
func (h *CommentsHandler) GetComments(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	post, err := h.content.PostByID(ctx, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.content.CommentsFor(ctx, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.CommentsResponse{
		Username: middleware.CurrentUser(c).Username,
		Post:     formatPost(post),
		Comments: make([]dto.CommentResponse, 0, len(comments)),
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, formatComment(&comments[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentsHandler) CreateComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	id, err := h.content.CreateComment(ctx, postID, user.ID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	if post, err := h.content.PostByID(ctx, postID); err == nil {
		h.notify.publish(ctx, post.UserID, ws.TypeCommentCreated, user.ID, gin.H{
			"id":      id,
			"post_id": postID,
			"comment": req.Comment,
			"author":  formatUser(user),
		})
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}

func postIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("postID"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return uint(id), true
}
