package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// Material is course material attached to a session. Only link metadata
// is stored here; file hosting lives outside this service.
type Material struct {
	gorm.Model

	SessionID   uint   `gorm:"not null;index" json:"sessionId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`

	Session Session `gorm:"foreignKey:SessionID" json:"-"`
}

/** -------------------- DTOs -------------------- */

type MaterialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"omitempty,url"`
}

type MaterialResponse struct {
	ID          uint      `json:"id"`
	SessionID   uint      `json:"sessionId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}
