package handlers

import (
	"net/http"
	"strconv"

	"classroom-service/internal/models"
	"classroom-service/internal/services"
	"classroom-service/internal/websocket"

	"github.com/gin-gonic/gin"
)

// DiscussionHandler owns the discussion REST surface. Every mutation writes
// to the database first and only then publishes the relay event, so a
// broadcast never announces state that was not durably stored.
type DiscussionHandler struct {
	discussionService *services.DiscussionService
	hub               *websocket.Hub
	activity          *services.ActivityService
}

func NewDiscussionHandler(discussionService *services.DiscussionService, hub *websocket.Hub, activity *services.ActivityService) *DiscussionHandler {
	return &DiscussionHandler{discussionService: discussionService, hub: hub, activity: activity}
}

func roomID(sessionID uint) string {
	return strconv.FormatUint(uint64(sessionID), 10)
}

func (h *DiscussionHandler) publish(sessionID uint, eventType websocket.EventType, payload interface{}) {
	event, err := websocket.NewEvent("", eventType, roomID(sessionID), payload)
	if err != nil {
		return
	}
	h.hub.Publish(roomID(sessionID), event)
}

/** -------------------- posts -------------------- */

// GetSessionPosts godoc
// @Summary Get session discussion
// @Description Get the full discussion tree of a session: posts with nested comments and replies
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {array} models.PostResponse "Discussion tree"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /sessions/{id}/posts [get]
func (h *DiscussionHandler) GetSessionPosts(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	posts, err := h.discussionService.GetSessionPosts(uint(sessionID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary Create a post
// @Description Create a discussion post in a session; the temp id, if sent, is echoed back
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body models.PostRequest true "Post content"
// @Success 201 {object} models.PostResponse "Post created"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /sessions/{id}/posts [post]
func (h *DiscussionHandler) CreatePost(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.discussionService.CreatePost(uint(sessionID), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.publish(post.SessionID, websocket.EventPostCreated, post)
	h.activity.Record(post.SessionID, userID, "post.created", post.ID)
	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Edit a post
// @Description Update a post's content (author only)
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body models.PostRequest true "New content"
// @Success 200 {object} models.PostResponse "Post updated"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /posts/{id} [put]
func (h *DiscussionHandler) UpdatePost(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.discussionService.UpdatePost(uint(id), userID, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.publish(post.SessionID, websocket.EventPostUpdated, post)
	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Description Delete a post with its comments and replies (author or teacher)
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string "Post deleted"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /posts/{id} [delete]
func (h *DiscussionHandler) DeletePost(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	post, err := h.discussionService.DeletePost(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.publish(post.SessionID, websocket.EventPostDeleted,
		websocket.EntityDeletedPayload{ID: post.ID})
	h.activity.Record(post.SessionID, userID, "post.deleted", post.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ToggleLike godoc
// @Summary Toggle post like
// @Description Flip the caller's like on a post; the response carries the authoritative count
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.LikeResponse "Authoritative like state"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /posts/{id}/like [post]
func (h *DiscussionHandler) ToggleLike(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	like, err := h.discussionService.ToggleLike(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := h.discussionService.PostSessionID(uint(id))
	if err == nil {
		h.publish(sessionID, websocket.EventLikeToggled, like)
	}
	c.JSON(http.StatusOK, like)
}

/** -------------------- comments -------------------- */

// CreateComment godoc
// @Summary Comment on a post
// @Description Add a comment under a post; the temp id, if sent, is echoed back
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body models.CommentRequest true "Comment content"
// @Success 201 {object} models.CommentResponse "Comment created"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /posts/{id}/comments [post]
func (h *DiscussionHandler) CreateComment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.discussionService.CreateComment(uint(postID), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := h.discussionService.PostSessionID(uint(postID))
	if err == nil {
		h.publish(sessionID, websocket.EventCommentCreated, comment)
		h.activity.Record(sessionID, userID, "comment.created", comment.ID)
	}
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Update a comment's content (author only)
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body models.CommentRequest true "New content"
// @Success 200 {object} models.CommentResponse "Comment updated"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /comments/{id} [put]
func (h *DiscussionHandler) UpdateComment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.discussionService.UpdateComment(uint(id), userID, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := h.discussionService.PostSessionID(comment.PostID)
	if err == nil {
		h.publish(sessionID, websocket.EventCommentUpdated, comment)
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Delete a comment and its replies (author or teacher)
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string "Comment deleted"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /comments/{id} [delete]
func (h *DiscussionHandler) DeleteComment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	comment, err := h.discussionService.DeleteComment(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := h.discussionService.PostSessionID(comment.PostID)
	if err == nil {
		// Receivers drop nested replies along with the comment
		h.publish(sessionID, websocket.EventCommentDeleted,
			websocket.EntityDeletedPayload{ID: comment.ID, ParentID: comment.PostID})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

/** -------------------- replies -------------------- */

// CreateReply godoc
// @Summary Reply to a comment
// @Description Add a reply under a comment; the temp id, if sent, is echoed back
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body models.ReplyRequest true "Reply content"
// @Success 201 {object} models.ReplyResponse "Reply created"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /comments/{id}/replies [post]
func (h *DiscussionHandler) CreateReply(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	commentID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.discussionService.CreateReply(uint(commentID), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := h.discussionService.CommentSessionID(uint(commentID))
	if err == nil {
		h.publish(sessionID, websocket.EventReplyCreated, reply)
	}
	c.JSON(http.StatusCreated, reply)
}

// UpdateReply godoc
// @Summary Edit a reply
// @Description Update a reply's content (author only)
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reply ID"
// @Param request body models.ReplyRequest true "New content"
// @Success 200 {object} models.ReplyResponse "Reply updated"
// @Failure 400 {object} map[string]interface{} "Bad request - invalid input data"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid or missing token"
// @Router /replies/{id} [put]
func (h *DiscussionHandler) UpdateReply(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req models.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.discussionService.UpdateReply(uint(id), userID, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := h.discussionService.CommentSessionID(reply.CommentID)
	if err == nil {
		h.publish(sessionID, websocket.EventReplyUpdated, reply)
	}
	c.JSON(http.StatusOK, reply)
}
