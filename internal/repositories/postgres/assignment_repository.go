package postgres

import (
	"classroom-service/internal/models"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db}
}

func (r *AssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *AssignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Save(assignment).Error
}

func (r *AssignmentRepository) Delete(assignmentID uint) error {
	return r.db.Delete(&models.Assignment{}, assignmentID).Error
}

func (r *AssignmentRepository) GetByID(assignmentID uint) (*models.Assignment, error) {
	var a models.Assignment
	err := r.db.First(&a, assignmentID).Error
	return &a, err
}

func (r *AssignmentRepository) GetBySession(sessionID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("session_id = ?", sessionID).
		Order("due_at ASC").
		Find(&assignments).Error
	return assignments, err
}
