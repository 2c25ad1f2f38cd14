package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hoteldesk/chat-admin/src/services"
)

// ChatHandler serves per-customer transcripts
type ChatHandler struct {
	transcripts *services.TranscriptService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(transcripts *services.TranscriptService) *ChatHandler {
	return &ChatHandler{transcripts: transcripts}
}

// HandleChatHistory renders a customer's transcript. Clients asking for
// JSON (Accept: application/json) get the structured lines instead of HTML.
func (ch *ChatHandler) HandleChatHistory(c *gin.Context) {
	key := c.Param("key")

	lines, err := ch.transcripts.Transcript(c.Request.Context(), key)
	if err != nil {
		writeError(c, err)
		return
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, gin.H{
			"customer_key": key,
			"lines":        lines,
		})
		return
	}

	c.HTML(http.StatusOK, "chat_history.html", gin.H{
		"CustomerKey": key,
		"Lines":       lines,
	})
}
