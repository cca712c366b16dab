package postgres

import (
	"classroom-service/internal/models"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db}
}

func (r *MaterialRepository) Create(material *models.Material) error {
	return r.db.Create(material).Error
}

func (r *MaterialRepository) Update(material *models.Material) error {
	return r.db.Save(material).Error
}

func (r *MaterialRepository) Delete(materialID uint) error {
	return r.db.Delete(&models.Material{}, materialID).Error
}

func (r *MaterialRepository) GetByID(materialID uint) (*models.Material, error) {
	var m models.Material
	err := r.db.First(&m, materialID).Error
	return &m, err
}

func (r *MaterialRepository) GetBySession(sessionID uint) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&materials).Error
	return materials, err
}
