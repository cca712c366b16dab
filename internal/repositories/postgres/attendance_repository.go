package postgres

import (
	"errors"

	"classroom-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db}
}

// Upsert writes one student's attendance for a session. Re-marking the same
// student replaces the previous status instead of adding a second row.
func (r *AttendanceRepository) Upsert(record *models.AttendanceRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "marked_by_id", "updated_at",
		}),
	}).Create(record).Error
}

func (r *AttendanceRepository) GetBySession(sessionID uint) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.Preload("Student").
		Where("session_id = ?", sessionID).
		Order("student_id ASC").
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) GetByStudent(sessionID uint, studentID uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.Preload("Student").
		Where("session_id = ? AND student_id = ?", sessionID, studentID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("attendance record not found")
		}
		return nil, err
	}
	return &record, nil
}
