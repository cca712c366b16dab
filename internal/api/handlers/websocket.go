package handlers

import (
	"net/http"
	"strconv"

	"classroom-service/internal/services"
	"classroom-service/internal/websocket"

	"github.com/gin-gonic/gin"
)

type WSHandler struct {
	hub      *websocket.Hub
	presence *services.PresenceService
}

func NewWSHandler(hub *websocket.Hub, presence *services.PresenceService) *WSHandler {
	return &WSHandler{hub: hub, presence: presence}
}

// HandleWebSocket godoc
// @Summary WebSocket connection
// @Description Establish the real-time connection. Room membership is managed afterwards with room.join and room.leave events.
// @Tags websocket
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 101 "Switching Protocols - WebSocket connection established"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	role := c.GetString("role")

	websocket.ServeWS(h.hub, c.Writer, c.Request, userID, role)
}

// GetRoomMembers godoc
// @Summary List room members
// @Description List users currently joined to a session room, with their roles
// @Tags websocket
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]interface{} "User id to role"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/members [get]
func (h *WSHandler) GetRoomMembers(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	members, err := h.presence.GetRoomMembers(c.Request.Context(), strconv.FormatUint(sessionID, 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get room members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// GetRelayStats godoc
// @Summary Relay statistics
// @Description Counters for connections, relayed events and dropped deliveries
// @Tags websocket
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} websocket.MetricsSnapshot "Relay counters"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /ws/stats [get]
func (h *WSHandler) GetRelayStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.hub.Metrics())
}
