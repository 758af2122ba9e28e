package projects

import (
	"context"

	"github.com/dmitrijs2005/trackly/internal/models"
)

// Repository scopes every lookup and mutation to the owning user. A project
// owned by someone else is reported as common.ErrNotFound.
type Repository interface {
	List(ctx context.Context, userID int64) ([]*models.Project, error)
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Get(ctx context.Context, userID, id int64) (*models.Project, error)
	Update(ctx context.Context, userID, id int64, upd models.ProjectUpdate) error
	Delete(ctx context.Context, userID, id int64) error
}
