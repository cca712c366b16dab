package models

import (
	"time"

	"gorm.io/gorm"
)

// AttendanceStatus is the marked state of a student for one session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

/** --------------------ENTITIES-------------------- */

// AttendanceRecord stores one student's attendance for one session.
// A student has at most one record per session; marking again updates it.
type AttendanceRecord struct {
	gorm.Model

	SessionID  uint             `gorm:"not null;uniqueIndex:idx_attendance_session_student" json:"sessionId"`
	StudentID  uint             `gorm:"not null;uniqueIndex:idx_attendance_session_student" json:"studentId"`
	Status     AttendanceStatus `gorm:"not null" json:"status"`
	MarkedByID uint             `json:"markedById"`

	Session Session `gorm:"foreignKey:SessionID" json:"-"`
	Student User    `gorm:"foreignKey:StudentID" json:"-"`
}

/** -------------------- DTOs -------------------- */

type AttendanceRequest struct {
	StudentID uint             `json:"studentId" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=present absent"`
}

type AttendanceResponse struct {
	ID          uint             `json:"id"`
	SessionID   uint             `json:"sessionId"`
	StudentID   uint             `json:"studentId"`
	StudentName string           `json:"studentName"`
	Status      AttendanceStatus `json:"status"`
	MarkedByID  uint             `json:"markedById"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}
