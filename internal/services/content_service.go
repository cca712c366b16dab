package services

import (
	"errors"

	"classroom-service/internal/models"
	"classroom-service/internal/repositories/postgres"
)

// ContentService manages the static content attached to a session:
// materials and assignments. Only the session's teacher may mutate either.
type ContentService struct {
	materialRepo   *postgres.MaterialRepository
	assignmentRepo *postgres.AssignmentRepository
	sessionRepo    *postgres.SessionRepository
}

func NewContentService(materialRepo *postgres.MaterialRepository, assignmentRepo *postgres.AssignmentRepository, sessionRepo *postgres.SessionRepository) *ContentService {
	return &ContentService{materialRepo, assignmentRepo, sessionRepo}
}

func (s *ContentService) requireTeacher(sessionID, userID uint) error {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return err
	}
	if session.TeacherID != userID {
		return errors.New("only the session teacher can manage content")
	}
	return nil
}

/** -------------------- materials -------------------- */

func (s *ContentService) AddMaterial(sessionID, userID uint, req *models.MaterialRequest) (*models.MaterialResponse, error) {
	if err := s.requireTeacher(sessionID, userID); err != nil {
		return nil, err
	}

	material := &models.Material{
		SessionID:   sessionID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	}
	if err := s.materialRepo.Create(material); err != nil {
		return nil, err
	}
	resp := toMaterialResponse(material)
	return &resp, nil
}

func (s *ContentService) UpdateMaterial(materialID, userID uint, req *models.MaterialRequest) (*models.MaterialResponse, error) {
	material, err := s.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeacher(material.SessionID, userID); err != nil {
		return nil, err
	}

	material.Title = req.Title
	material.Description = req.Description
	material.URL = req.URL
	if err := s.materialRepo.Update(material); err != nil {
		return nil, err
	}
	resp := toMaterialResponse(material)
	return &resp, nil
}

func (s *ContentService) DeleteMaterial(materialID, userID uint) (*models.Material, error) {
	material, err := s.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeacher(material.SessionID, userID); err != nil {
		return nil, err
	}
	if err := s.materialRepo.Delete(materialID); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *ContentService) ListMaterials(sessionID uint) ([]models.MaterialResponse, error) {
	materials, err := s.materialRepo.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}
	responses := make([]models.MaterialResponse, 0, len(materials))
	for i := range materials {
		responses = append(responses, toMaterialResponse(&materials[i]))
	}
	return responses, nil
}

/** -------------------- assignments -------------------- */

func (s *ContentService) AddAssignment(sessionID, userID uint, req *models.AssignmentRequest) (*models.AssignmentResponse, error) {
	if err := s.requireTeacher(sessionID, userID); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		SessionID:    sessionID,
		Title:        req.Title,
		Instructions: req.Instructions,
		DueAt:        req.DueAt,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

func (s *ContentService) UpdateAssignment(assignmentID, userID uint, req *models.AssignmentRequest) (*models.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeacher(assignment.SessionID, userID); err != nil {
		return nil, err
	}

	assignment.Title = req.Title
	assignment.Instructions = req.Instructions
	assignment.DueAt = req.DueAt
	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, err
	}
	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

func (s *ContentService) DeleteAssignment(assignmentID, userID uint) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeacher(assignment.SessionID, userID); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Delete(assignmentID); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *ContentService) ListAssignments(sessionID uint) ([]models.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}
	responses := make([]models.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, toAssignmentResponse(&assignments[i]))
	}
	return responses, nil
}

/** -------------------- mapping -------------------- */

func toMaterialResponse(material *models.Material) models.MaterialResponse {
	return models.MaterialResponse{
		ID:          material.ID,
		SessionID:   material.SessionID,
		Title:       material.Title,
		Description: material.Description,
		URL:         material.URL,
		CreatedAt:   material.CreatedAt,
	}
}

func toAssignmentResponse(assignment *models.Assignment) models.AssignmentResponse {
	return models.AssignmentResponse{
		ID:           assignment.ID,
		SessionID:    assignment.SessionID,
		Title:        assignment.Title,
		Instructions: assignment.Instructions,
		DueAt:        assignment.DueAt,
		CreatedAt:    assignment.CreatedAt,
	}
}
