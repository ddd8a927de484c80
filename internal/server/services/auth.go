package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/cryptox"
	"github.com/dmitrijs2005/sharebox/internal/logging"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/files"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/users"
)

// LoginResult is what a successful login puts in the session.
type LoginResult struct {
	Identity Identity
	// Users is filled for the admin only.
	Users []models.User
	Files []models.File
}

// AuthService checks credentials and resolves session identities.
type AuthService struct {
	users         users.Repository
	files         files.Repository
	adminEmail    string
	adminPassword string
	logger        logging.Logger
}

// NewAuthService configures the reserved admin pair. An empty admin
// password disables admin login.
func NewAuthService(u users.Repository, f files.Repository, adminEmail, adminPassword string, logger logging.Logger) *AuthService {
	return &AuthService{
		users:         u,
		files:         f,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		logger:        logger.With("module", "auth"),
	}
}

func (s *AuthService) IsAdmin(email string) bool {
	return s.adminEmail != "" && email == s.adminEmail
}

func (s *AuthService) isAdminCredentials(email, password string) bool {
	if s.adminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword))
	return emailOK&passOK == 1
}

// Login returns ErrorNoUsers, ErrorUserNotFound or ErrorPasswordIncorrect
// for the three ways a non-admin login can fail.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)

	if s.isAdminCredentials(email, password) {
		return s.adminLogin(ctx, email)
	}

	all, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if len(all) == 0 {
		return nil, common.ErrorNoUsers
	}

	var user *models.User
	for i := range all {
		if all[i].Email == email {
			user = &all[i]
			break
		}
	}
	if user == nil {
		s.logger.Info(ctx, "login failed", "email", email, "reason", "unknown email")
		return nil, common.ErrorUserNotFound
	}

	ok, err := cryptox.CheckPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Warn(ctx, "stored password hash is unreadable", "email", email, "err", err)
	}
	if !ok {
		s.logger.Info(ctx, "login failed", "email", email, "reason", "password mismatch")
		return nil, common.ErrorPasswordIncorrect
	}

	own, err := s.files.ListByOwner(ctx, email)
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info(ctx, "user logged in", "email", email)
	return &LoginResult{
		Identity: Identity{Email: user.Email, Name: user.Name},
		Files:    own,
	}, nil
}

func (s *AuthService) adminLogin(ctx context.Context, email string) (*LoginResult, error) {
	allUsers, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	allFiles, err := s.files.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info(ctx, "admin logged in", "email", email)
	return &LoginResult{
		Identity: Identity{Email: email, Name: "Admin", Admin: true},
		Users:    allUsers,
		Files:    allFiles,
	}, nil
}

// Resolve maps a session email to its stored user. A blank or unknown
// email is ErrorUnauthenticated.
func (s *AuthService) Resolve(ctx context.Context, email string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: no session identity", common.ErrorUnauthenticated)
	}

	u, err := s.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: user %s does not exist", common.ErrorUnauthenticated, email)
		}
		return nil, storeError(err)
	}
	return u, nil
}
