package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// Post is a top-level discussion entry in a session room.
type Post struct {
	gorm.Model

	SessionID uint   `gorm:"not null;index" json:"sessionId"`
	AuthorID  uint   `gorm:"not null" json:"authorId"`
	Content   string `gorm:"not null" json:"content"`

	Author   User      `gorm:"foreignKey:AuthorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likers   []*User   `gorm:"many2many:post_likes" json:"-"`
}

// Comment hangs off a post and may carry nested replies.
type Comment struct {
	gorm.Model

	PostID   uint   `gorm:"not null;index" json:"postId"`
	AuthorID uint   `gorm:"not null" json:"authorId"`
	Content  string `gorm:"not null" json:"content"`

	Author  User    `gorm:"foreignKey:AuthorID" json:"-"`
	Replies []Reply `gorm:"foreignKey:CommentID" json:"replies,omitempty"`
}

// Reply is the deepest level of the discussion tree.
type Reply struct {
	gorm.Model

	CommentID uint   `gorm:"not null;index" json:"commentId"`
	AuthorID  uint   `gorm:"not null" json:"authorId"`
	Content   string `gorm:"not null" json:"content"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

/** -------------------- DTOs -------------------- */

type PostRequest struct {
	Content string `json:"content" binding:"required"`
	// TempID is the client-generated provisional id used for optimistic
	// rendering; it is echoed back so the client can swap it for the real id.
	TempID string `json:"tempId,omitempty"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
	TempID  string `json:"tempId,omitempty"`
}

type ReplyRequest struct {
	Content string `json:"content" binding:"required"`
	TempID  string `json:"tempId,omitempty"`
}

type PostResponse struct {
	ID         uint              `json:"id"`
	SessionID  uint              `json:"sessionId"`
	AuthorID   uint              `json:"authorId"`
	AuthorName string            `json:"authorName"`
	Content    string            `json:"content"`
	LikeCount  int               `json:"likeCount"`
	LikedBy    []uint            `json:"likedBy"`
	Comments   []CommentResponse `json:"comments,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	TempID     string            `json:"tempId,omitempty"`
}

type CommentResponse struct {
	ID         uint            `json:"id"`
	PostID     uint            `json:"postId"`
	AuthorID   uint            `json:"authorId"`
	AuthorName string          `json:"authorName"`
	Content    string          `json:"content"`
	Replies    []ReplyResponse `json:"replies,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	TempID     string          `json:"tempId,omitempty"`
}

type ReplyResponse struct {
	ID         uint      `json:"id"`
	CommentID  uint      `json:"commentId"`
	AuthorID   uint      `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	TempID     string    `json:"tempId,omitempty"`
}

// LikeResponse carries the authoritative like state after a toggle. Clients
// replace their local count from this payload instead of incrementing.
type LikeResponse struct {
	PostID    uint   `json:"postId"`
	LikeCount int    `json:"likeCount"`
	LikedBy   []uint `json:"likedBy"`
	Liked     bool   `json:"liked"`
}
