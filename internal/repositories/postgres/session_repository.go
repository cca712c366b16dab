package postgres

import (
	"errors"

	"classroom-service/internal/models"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db}
}

func (r *SessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) Update(session *models.Session) error {
	return r.db.Save(session).Error
}

func (r *SessionRepository) UpdateStatus(sessionID uint, status models.SessionStatus) error {
	result := r.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(sessionID uint) error {
	return r.db.Delete(&models.Session{}, sessionID).Error
}

func (r *SessionRepository) GetByID(sessionID uint) (*models.Session, error) {
	var s models.Session
	err := r.db.Preload("Teacher").First(&s, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("session not found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) GetAll() ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.Preload("Teacher").Order("starts_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) GetByTeacher(teacherID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.Preload("Teacher").
		Where("teacher_id = ?", teacherID).
		Order("starts_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) GetByStatus(status models.SessionStatus) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.Preload("Teacher").
		Where("status = ?", status).
		Order("starts_at ASC").
		Find(&sessions).Error
	return sessions, err
}
