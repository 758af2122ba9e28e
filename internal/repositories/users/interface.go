package users

import (
	"context"

	"github.com/dmitrijs2005/trackly/internal/models"
)

// Update lists the profile columns to change. Nil fields are left untouched.
type Update struct {
	DisplayName  *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return u.DisplayName == nil && u.Email == nil && u.PasswordHash == nil
}

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	Update(ctx context.Context, id int64, upd Update) error
	SetAvatar(ctx context.Context, id int64, locator string) error
}
