package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hoteldesk/chat-admin/src/middleware"
	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/services"
)

// DashboardHandler serves the engagement summary view
type DashboardHandler struct {
	engagement *services.EngagementService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(engagement *services.EngagementService) *DashboardHandler {
	return &DashboardHandler{engagement: engagement}
}

// UserListResponse is the JSON shape of the users endpoint
type UserListResponse struct {
	Total  int                      `json:"total"`
	Active int                      `json:"active"`
	Users  []models.CustomerSummary `json:"users"`
}

func (dh *DashboardHandler) summary(c *gin.Context) (*UserListResponse, error) {
	ctx := c.Request.Context()

	total, err := dh.engagement.TotalCount(ctx)
	if err != nil {
		return nil, err
	}
	active, err := dh.engagement.ActiveCount(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	users, err := dh.engagement.Summarize(ctx)
	if err != nil {
		return nil, err
	}

	return &UserListResponse{Total: total, Active: active, Users: users}, nil
}

// HandleDashboard renders the HTML summary view
func (dh *DashboardHandler) HandleDashboard(c *gin.Context) {
	resp, err := dh.summary(c)
	if err != nil {
		writeError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Total":    resp.Total,
		"Active":   resp.Active,
		"Users":    resp.Users,
		"Username": c.GetString(middleware.UsernameKey),
	})
}

// HandleListUsers returns the summary as JSON
func (dh *DashboardHandler) HandleListUsers(c *gin.Context) {
	resp, err := dh.summary(c)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
