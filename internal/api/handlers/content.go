package handlers

import (
	"net/http"
	"strconv"

	"classroom-service/internal/models"
	"classroom-service/internal/services"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves session materials and assignments. These are
// plain REST resources; the live relay does not carry content events.
type ContentHandler struct {
	contentService *services.ContentService
	activity       *services.ActivityService
}

func NewContentHandler(contentService *services.ContentService, activity *services.ActivityService) *ContentHandler {
	return &ContentHandler{contentService: contentService, activity: activity}
}

/** -------------------- materials -------------------- */

// ListMaterials godoc
// @Summary List session materials
// @Tags materials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {array} models.MaterialResponse "Materials"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/materials [get]
func (h *ContentHandler) ListMaterials(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	materials, err := h.contentService.ListMaterials(uint(sessionID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list materials"})
		return
	}
	c.JSON(http.StatusOK, materials)
}

// AddMaterial godoc
// @Summary Add material
// @Description Attach link material to a session (session teacher only)
// @Tags materials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body models.MaterialRequest true "Material data"
// @Success 201 {object} models.MaterialResponse "Material added"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /sessions/{id}/materials [post]
func (h *ContentHandler) AddMaterial(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.contentService.AddMaterial(uint(sessionID), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record(material.SessionID, userID, "material.added", material.ID)
	c.JSON(http.StatusCreated, material)
}

// UpdateMaterial godoc
// @Summary Update material
// @Tags materials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Param request body models.MaterialRequest true "Material data"
// @Success 200 {object} models.MaterialResponse "Material updated"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /materials/{id} [put]
func (h *ContentHandler) UpdateMaterial(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.contentService.UpdateMaterial(uint(id), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, material)
}

// DeleteMaterial godoc
// @Summary Delete material
// @Tags materials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 200 {object} map[string]string "Material deleted"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /materials/{id} [delete]
func (h *ContentHandler) DeleteMaterial(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	material, err := h.contentService.DeleteMaterial(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record(material.SessionID, userID, "material.removed", material.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted"})
}

/** -------------------- assignments -------------------- */

// ListAssignments godoc
// @Summary List session assignments
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {array} models.AssignmentResponse "Assignments"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/assignments [get]
func (h *ContentHandler) ListAssignments(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	assignments, err := h.contentService.ListAssignments(uint(sessionID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// AddAssignment godoc
// @Summary Add assignment
// @Description Attach an assignment to a session (session teacher only)
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body models.AssignmentRequest true "Assignment data"
// @Success 201 {object} models.AssignmentResponse "Assignment added"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /sessions/{id}/assignments [post]
func (h *ContentHandler) AddAssignment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.contentService.AddAssignment(uint(sessionID), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record(assignment.SessionID, userID, "assignment.added", assignment.ID)
	c.JSON(http.StatusCreated, assignment)
}

// UpdateAssignment godoc
// @Summary Update assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body models.AssignmentRequest true "Assignment data"
// @Success 200 {object} models.AssignmentResponse "Assignment updated"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /assignments/{id} [put]
func (h *ContentHandler) UpdateAssignment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.contentService.UpdateAssignment(uint(id), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment godoc
// @Summary Delete assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} map[string]string "Assignment deleted"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /assignments/{id} [delete]
func (h *ContentHandler) DeleteAssignment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	assignment, err := h.contentService.DeleteAssignment(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record(assignment.SessionID, userID, "assignment.removed", assignment.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
}
