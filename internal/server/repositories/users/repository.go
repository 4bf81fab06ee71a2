package users

import (
	"context"

	"github.com/dmitrijs2005/schooldesk/internal/server/models"
)

// Repository stores accounts. Emails are unique; Create returns
// common.ErrorAlreadyExists for a taken one and the getters return
// common.ErrorNotFound for unknown accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
