package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/cryptox"
	"github.com/dmitrijs2005/sharebox/internal/logging"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/users"
)

// UserService is the user registry. Passwords go in and are stored only
// as argon2id hashes.
type UserService struct {
	users  users.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewUserService(repo users.Repository, logger logging.Logger) *UserService {
	return &UserService{users: repo, logger: logger.With("module", "users"), now: time.Now}
}

// CreateUser registers a new user. A taken email is a validation error.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	_, err := s.users.Get(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: email %s is already registered", common.ErrorValidation, email)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, storeError(err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: email %s is already registered", common.ErrorValidation, email)
		}
		return nil, storeError(err)
	}

	s.logger.Info(ctx, "user created", "email", email)
	return created, nil
}

// FindUsers returns every user, an empty slice when there are none.
func (s *UserService) FindUsers(ctx context.Context) ([]models.User, error) {
	list, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if list == nil {
		list = []models.User{}
	}
	return list, nil
}

func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.Get(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, common.ErrorNotFound)
		}
		return nil, storeError(err)
	}
	return u, nil
}

// UpdateUser changes the name and/or password. Nil or blank values are
// left untouched; at least one must be given.
func (s *UserService) UpdateUser(ctx context.Context, email string, newName, newPassword *string) (*models.User, error) {
	email = strings.TrimSpace(email)
	newName = trimmedOrNil(newName)
	if newPassword != nil && strings.TrimSpace(*newPassword) == "" {
		newPassword = nil
	}

	if email == "" || (newName == nil && newPassword == nil) {
		return nil, fmt.Errorf("%w: email and at least one of newName or newPassword are required", common.ErrorValidation)
	}

	upd := models.UserUpdate{Name: newName}
	if newPassword != nil {
		h := cryptox.HashPassword(*newPassword)
		upd.PasswordHash = &h
	}

	u, err := s.users.Update(ctx, email, upd)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, common.ErrorNotFound)
		}
		return nil, storeError(err)
	}

	s.logger.Info(ctx, "user updated", "email", email, "name", newName != nil, "password", newPassword != nil)
	return u, nil
}

// DeleteUser removes the user record only; their files stay.
func (s *UserService) DeleteUser(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrorValidation)
	}

	if err := s.users.Delete(ctx, email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("user %s: %w", email, common.ErrorNotFound)
		}
		return storeError(err)
	}

	s.logger.Info(ctx, "user deleted", "email", email)
	return nil
}

func trimmedOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
