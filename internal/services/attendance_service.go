package services

import (
	"errors"

	"classroom-service/internal/models"
	"classroom-service/internal/repositories/postgres"
)

type AttendanceService struct {
	repo        *postgres.AttendanceRepository
	sessionRepo *postgres.SessionRepository
	userRepo    *postgres.UserRepository
}

func NewAttendanceService(repo *postgres.AttendanceRepository, sessionRepo *postgres.SessionRepository, userRepo *postgres.UserRepository) *AttendanceService {
	return &AttendanceService{repo, sessionRepo, userRepo}
}

// Mark sets one student's attendance for a session. Teachers may mark
// anyone; students may only mark themselves, and only while the session is
// live. Re-marking replaces the previous status.
func (s *AttendanceService) Mark(sessionID, markerID uint, req *models.AttendanceRequest) (*models.AttendanceResponse, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	marker, err := s.userRepo.FindByID(markerID)
	if err != nil {
		return nil, err
	}
	if marker.Role != models.RoleTeacher {
		if req.StudentID != markerID {
			return nil, errors.New("students can only mark their own attendance")
		}
		if session.Status != models.SessionLive {
			return nil, errors.New("self check-in is only open while the session is live")
		}
	}

	student, err := s.userRepo.FindByID(req.StudentID)
	if err != nil {
		return nil, errors.New("student not found")
	}

	record := &models.AttendanceRecord{
		SessionID:  sessionID,
		StudentID:  req.StudentID,
		Status:     req.Status,
		MarkedByID: markerID,
	}
	if err := s.repo.Upsert(record); err != nil {
		return nil, err
	}
	record.Student = *student

	resp := toAttendanceResponse(record)
	return &resp, nil
}

func (s *AttendanceService) GetRoster(sessionID uint) ([]models.AttendanceResponse, error) {
	records, err := s.repo.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toAttendanceResponse(&records[i]))
	}
	return responses, nil
}

func toAttendanceResponse(record *models.AttendanceRecord) models.AttendanceResponse {
	return models.AttendanceResponse{
		ID:          record.ID,
		SessionID:   record.SessionID,
		StudentID:   record.StudentID,
		StudentName: record.Student.Username,
		Status:      record.Status,
		MarkedByID:  record.MarkedByID,
		UpdatedAt:   record.UpdatedAt,
	}
}
