package handlers

import (
	"net/http"
	"strconv"

	"classroom-service/internal/models"
	"classroom-service/internal/services"
	"classroom-service/internal/websocket"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	hub               *websocket.Hub
	activity          *services.ActivityService
}

func NewAttendanceHandler(attendanceService *services.AttendanceService, hub *websocket.Hub, activity *services.ActivityService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, hub: hub, activity: activity}
}

// Mark godoc
// @Summary Mark attendance
// @Description Mark one student's attendance; re-marking replaces the previous status. The change is broadcast to the session room after the write lands.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body models.AttendanceRequest true "Attendance data"
// @Success 200 {object} models.AttendanceResponse "Attendance recorded"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /sessions/{id}/attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.attendanceService.Mark(uint(sessionID), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, buildErr := websocket.NewEvent("", websocket.EventAttendanceChange, roomID(record.SessionID),
		websocket.AttendanceChangePayload{StudentID: record.StudentID, Status: string(record.Status)})
	if buildErr == nil {
		h.hub.Publish(roomID(record.SessionID), event)
	}

	h.activity.Record(record.SessionID, userID, "attendance."+string(record.Status), record.StudentID)
	c.JSON(http.StatusOK, record)
}

// GetRoster godoc
// @Summary Get attendance roster
// @Description Get every attendance record of a session
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {array} models.AttendanceResponse "Attendance records"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/attendance [get]
func (h *AttendanceHandler) GetRoster(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	records, err := h.attendanceService.GetRoster(uint(sessionID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get roster"})
		return
	}
	c.JSON(http.StatusOK, records)
}
