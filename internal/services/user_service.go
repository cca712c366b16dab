package services

import (
	"errors"

	"classroom-service/internal/models"
	"classroom-service/internal/repositories/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserService exposes read access to provisioned accounts. Account
// creation and credentials live in the institution's identity system.
type UserService struct {
	repo *postgres.UserRepository
}

func NewUserService(repo *postgres.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetProfile(userID uint) (*models.UserResponse, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *UserService) GetUserByEmail(email string) (*models.UserResponse, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *UserService) SearchUsers(username string) ([]models.UserResponse, error) {
	users, err := s.repo.SearchByUsername(username)
	if err != nil {
		return nil, err
	}
	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, nil
}
