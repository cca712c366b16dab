package handlers

import (
	"net/http"
	"strconv"

	"classroom-service/internal/models"
	"classroom-service/internal/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
	activity       *services.ActivityService
}

func NewSessionHandler(sessionService *services.SessionService, activity *services.ActivityService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, activity: activity}
}

// ListSessions godoc
// @Summary List sessions
// @Description List all class sessions, optionally filtered by status
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (scheduled, live, ended)"
// @Success 200 {array} models.SessionResponse "List of sessions"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	status := models.SessionStatus(c.Query("status"))
	sessions, err := h.sessionService.ListSessions(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession godoc
// @Summary Get session by ID
// @Description Get detailed information about one class session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} models.SessionResponse "Session details"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	session, err := h.sessionService.GetSession(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// CreateSession godoc
// @Summary Create a session
// @Description Schedule a new class session (teacher only)
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SessionRequest true "Session data"
// @Success 201 {object} models.SessionResponse "Session created"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.CreateSession(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record(session.ID, userID, "session.created", session.ID)
	c.JSON(http.StatusCreated, session)
}

// UpdateSession godoc
// @Summary Update session
// @Description Update a session's details (session teacher only)
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body models.SessionRequest true "Session data"
// @Success 200 {object} models.SessionResponse "Session updated"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id} [put]
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.UpdateSession(uint(id), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// ChangeStatus godoc
// @Summary Change session status
// @Description Move a session through its lifecycle: scheduled, live, ended
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body models.SessionStatusRequest true "New status"
// @Success 200 {object} models.SessionResponse "Status changed"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid transition"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /sessions/{id}/status [put]
func (h *SessionHandler) ChangeStatus(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.SessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.ChangeStatus(uint(id), userID, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record(session.ID, userID, "session.status."+string(req.Status), session.ID)
	c.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete session
// @Description Delete a session (session teacher only)
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]string "Session deleted"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.sessionService.DeleteSession(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}
