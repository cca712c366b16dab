package services

import (
	"errors"

	"classroom-service/internal/models"
	"classroom-service/internal/repositories/postgres"

	"gorm.io/gorm"
)

type SessionService struct {
	repo     *postgres.SessionRepository
	userRepo *postgres.UserRepository
}

func NewSessionService(repo *postgres.SessionRepository, userRepo *postgres.UserRepository) *SessionService {
	return &SessionService{repo, userRepo}
}

func (s *SessionService) CreateSession(teacherID uint, req *models.SessionRequest) (*models.SessionResponse, error) {
	teacher, err := s.userRepo.FindByID(teacherID)
	if err != nil {
		return nil, errors.New("teacher not found")
	}
	if teacher.Role != models.RoleTeacher {
		return nil, errors.New("only teachers can create sessions")
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, errors.New("session must end after it starts")
	}

	session := &models.Session{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Status:      models.SessionScheduled,
		TeacherID:   teacherID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.repo.Create(session); err != nil {
		return nil, err
	}
	session.Teacher = *teacher

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *SessionService) UpdateSession(sessionID, teacherID uint, req *models.SessionRequest) (*models.SessionResponse, error) {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.TeacherID != teacherID {
		return nil, errors.New("only the session teacher can update it")
	}

	session.Title = req.Title
	session.Description = req.Description
	session.Subject = req.Subject
	session.StartsAt = req.StartsAt
	session.EndsAt = req.EndsAt
	if err := s.repo.Update(session); err != nil {
		return nil, err
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

// ChangeStatus moves a session through its lifecycle. Reopening an ended
// session is not allowed.
func (s *SessionService) ChangeStatus(sessionID, teacherID uint, status models.SessionStatus) (*models.SessionResponse, error) {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.TeacherID != teacherID {
		return nil, errors.New("only the session teacher can change its status")
	}
	if session.Status == models.SessionEnded && status != models.SessionEnded {
		return nil, errors.New("an ended session cannot be reopened")
	}

	if err := s.repo.UpdateStatus(sessionID, status); err != nil {
		return nil, err
	}
	session.Status = status

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *SessionService) DeleteSession(sessionID, teacherID uint) error {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("session not found")
		}
		return err
	}
	if session.TeacherID != teacherID {
		return errors.New("only the session teacher can delete it")
	}
	return s.repo.Delete(sessionID)
}

func (s *SessionService) GetSession(sessionID uint) (*models.SessionResponse, error) {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *SessionService) GetSessionEntity(sessionID uint) (*models.Session, error) {
	return s.repo.GetByID(sessionID)
}

func (s *SessionService) ListSessions(status models.SessionStatus) ([]models.SessionResponse, error) {
	var (
		sessions []models.Session
		err      error
	)
	if status != "" {
		sessions, err = s.repo.GetByStatus(status)
	} else {
		sessions, err = s.repo.GetAll()
	}
	if err != nil {
		return nil, err
	}

	responses := make([]models.SessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, toSessionResponse(&sessions[i]))
	}
	return responses, nil
}

func toSessionResponse(session *models.Session) models.SessionResponse {
	return models.SessionResponse{
		ID:          session.ID,
		Title:       session.Title,
		Description: session.Description,
		Subject:     session.Subject,
		Status:      session.Status,
		TeacherID:   session.TeacherID,
		TeacherName: session.Teacher.Username,
		StartsAt:    session.StartsAt,
		EndsAt:      session.EndsAt,
		CreatedAt:   session.CreatedAt,
	}
}
