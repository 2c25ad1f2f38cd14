package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hoteldesk/chat-admin/src/services"
)

// ActionsHandler handles the admin writes: AI toggling and manual messages
type ActionsHandler struct {
	customerService *services.CustomerService
}

// NewActionsHandler creates a new actions handler
func NewActionsHandler(customerService *services.CustomerService) *ActionsHandler {
	return &ActionsHandler{customerService: customerService}
}

// HandleToggleAI flips the AI flag for a customer and returns the new state
func (ah *ActionsHandler) HandleToggleAI(c *gin.Context) {
	newState, err := ah.customerService.ToggleAI(c.Request.Context(), c.Param("key"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"ai_enabled": newState,
	})
}

// SetAIRequest represents the explicit flag-set payload (form or JSON)
type SetAIRequest struct {
	Enabled *bool `form:"enabled" json:"enabled" binding:"required"`
}

// HandleSetAI sets the AI flag to an explicit value instead of flipping it
func (ah *ActionsHandler) HandleSetAI(c *gin.Context) {
	var req SetAIRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := ah.customerService.SetAI(c.Request.Context(), c.Param("key"), *req.Enabled); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"ai_enabled": *req.Enabled,
	})
}

// SendMessageRequest represents the send-message payload (form or JSON)
type SendMessageRequest struct {
	CustomerKey string `form:"customer_key" json:"customer_key" binding:"required"`
	Message     string `form:"message" json:"message" binding:"required"`
}

// HandleSendMessage injects an admin-authored message into a conversation
func (ah *ActionsHandler) HandleSendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	event, err := ah.customerService.InjectAdminMessage(c.Request.Context(), req.CustomerKey, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"timestamp": event.Timestamp,
	})
}
