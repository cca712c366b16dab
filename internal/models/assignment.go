package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// Assignment is homework attached to a session.
type Assignment struct {
	gorm.Model

	SessionID    uint      `gorm:"not null;index" json:"sessionId"`
	Title        string    `gorm:"not null" json:"title"`
	Instructions string    `json:"instructions"`
	DueAt        time.Time `json:"dueAt"`

	Session Session `gorm:"foreignKey:SessionID" json:"-"`
}

/** -------------------- DTOs -------------------- */

type AssignmentRequest struct {
	Title        string    `json:"title" binding:"required"`
	Instructions string    `json:"instructions"`
	DueAt        time.Time `json:"dueAt" binding:"required"`
}

type AssignmentResponse struct {
	ID           uint      `json:"id"`
	SessionID    uint      `json:"sessionId"`
	Title        string    `json:"title"`
	Instructions string    `json:"instructions"`
	DueAt        time.Time `json:"dueAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
