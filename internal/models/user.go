package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is display-level only; authorization happens at the REST layer.
type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

/** --------------------ENTITIES-------------------- */

// User represents a platform account (teacher or student). Accounts are
// provisioned by the institution; this service does not implement signup.
type User struct {
	gorm.Model
	Username string   `gorm:"uniqueIndex;not null" json:"username"`
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Role     UserRole `gorm:"default:student" json:"role"`
	Avatar   string   `json:"avatar,omitempty"`
}

/** -------------------- DTOs -------------------- */

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      UserRole  `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
