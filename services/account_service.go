package services

import (
	"context"
	"strings"

	"bookstore-service/models"
	"bookstore-service/repository"

	"go.uber.org/zap"
)

const (
	MsgInvalidEmail = "Invalid email. Please try again."
	MsgUserNotFound = "Your account could not be found. Please sign in again."
)

// AccountService handles email-only sign in and profile maintenance.
type AccountService interface {
	Login(ctx context.Context, email string) (*models.User, *ServiceError)
	GetProfile(ctx context.Context, email string) (*models.User, *ServiceError)
	UpdateProfile(ctx context.Context, email string, form *models.ProfileForm) (*models.User, *ServiceError)
}

type accountServiceImpl struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewAccountService(users repository.UserRepository, logger *zap.Logger) AccountService {
	return &accountServiceImpl{users: users, logger: logger}
}

// Login identifies the user by email. No credential is checked.
func (s *accountServiceImpl) Login(ctx context.Context, email string) (*models.User, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(401, MsgInvalidEmail)
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, internal("Sign in failed")
	}
	if _, ok := models.ParseRole(string(user.Role)); !ok {
		s.logger.Warn("User has unknown role", zap.String("email", user.Email), zap.String("role", string(user.Role)))
		return nil, newError(401, MsgInvalidEmail)
	}
	s.logger.Info("User signed in", zap.String("email", user.Email), zap.String("role", user.Role.String()))
	return user, nil
}

func (s *accountServiceImpl) GetProfile(ctx context.Context, email string) (*models.User, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(404, MsgUserNotFound)
		}
		s.logger.Error("Failed to load profile", zap.String("email", email), zap.Error(err))
		return nil, internal("Failed to load your profile")
	}
	return user, nil
}

// UpdateProfile changes name, address and department only.
func (s *accountServiceImpl) UpdateProfile(ctx context.Context, email string, form *models.ProfileForm) (*models.User, *ServiceError) {
	user, svcErr := s.GetProfile(ctx, email)
	if svcErr != nil {
		return nil, svcErr
	}

	name := strings.TrimSpace(form.Name)
	if name == "" {
		return nil, badRequest("Name is required.")
	}
	user.Name = name
	user.Address = strings.TrimSpace(form.Address)
	user.Department = strings.TrimSpace(form.Department)

	if err := s.users.UpdateProfile(ctx, user.Email, user.Name, user.Address, user.Department); err != nil {
		if isNotFound(err) {
			return nil, newError(404, MsgUserNotFound)
		}
		s.logger.Error("Failed to update profile", zap.String("email", email), zap.Error(err))
		return nil, internal("Failed to update your profile")
	}
	return user, nil
}
