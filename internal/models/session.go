package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionStatus tracks the lifecycle of a class session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionLive      SessionStatus = "live"
	SessionEnded     SessionStatus = "ended"
)

/** --------------------ENTITIES-------------------- */

// Session represents one class session. Its numeric ID doubles as the
// room id for the real-time layer.
type Session struct {
	gorm.Model

	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	Subject     string        `json:"subject"`
	Status      SessionStatus `gorm:"default:scheduled" json:"status"`
	TeacherID   uint          `gorm:"not null;index" json:"teacherId"`
	StartsAt    time.Time     `json:"startsAt"`
	EndsAt      time.Time     `json:"endsAt"`

	Teacher     User         `gorm:"foreignKey:TeacherID" json:"-"`
	Materials   []Material   `gorm:"foreignKey:SessionID" json:"materials,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:SessionID" json:"assignments,omitempty"`
}

/** -------------------- DTOs -------------------- */

type SessionRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
}

type SessionStatusRequest struct {
	Status SessionStatus `json:"status" binding:"required,oneof=scheduled live ended"`
}

type SessionResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Subject     string        `json:"subject"`
	Status      SessionStatus `json:"status"`
	TeacherID   uint          `json:"teacherId"`
	TeacherName string        `json:"teacherName"`
	StartsAt    time.Time     `json:"startsAt"`
	EndsAt      time.Time     `json:"endsAt"`
	CreatedAt   time.Time     `json:"createdAt"`
}
