package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/socialnet/internal/services"
)

type UploadsHandler struct {
	content *services.ContentStore
}

func NewUploadsHandler(content *services.ContentStore) *UploadsHandler {
	return &UploadsHandler{content: content}
}

// Serve отдаёт вложение по сгенерированному имени
func (h *UploadsHandler) Serve(c *gin.Context) {
	name := c.Param("filename")

	file, err := h.content.OpenAttachment(name)
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		respondError(c, err)
		return
	}
	if info.IsDir() {
		respondError(c, services.ErrAttachmentNotFound)
		return
	}

	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), file)
}
