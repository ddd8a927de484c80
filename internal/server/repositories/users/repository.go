// Package users stores user records keyed by email.
package users

import (
	"context"

	"github.com/dmitrijs2005/sharebox/internal/server/models"
)

// Repository is the "users" collection. Get, Update and Delete return
// common.ErrorNotFound for an unknown email; Create returns
// common.ErrorAlreadyExists when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, email string, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, email string) error
}
