package handlers

import (
	"net/http"

	"classroom-service/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
	presence    *services.PresenceService
}

func NewUserHandler(userService *services.UserService, presence *services.PresenceService) *UserHandler {
	return &UserHandler{userService: userService, presence: presence}
}

// GetProfile godoc
// @Summary Get own profile
// @Description Get the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse "User profile"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	user, err := h.userService.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// SearchUsers godoc
// @Summary Search users
// @Description Search provisioned accounts by partial username
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username query string true "Username fragment"
// @Success 200 {array} models.UserResponse "Matching users"
// @Failure 400 {object} map[string]interface{} "Bad request - missing username"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /users/search [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username query parameter is required"})
		return
	}

	users, err := h.userService.SearchUsers(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetOnlineUsers godoc
// @Summary List online users
// @Description List the user ids currently connected to the relay
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Online user ids"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users/online [get]
func (h *UserHandler) GetOnlineUsers(c *gin.Context) {
	users, err := h.presence.GetOnlineUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get online users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"online": users})
}
