package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/trackly/internal/models"
)

type Repository interface {
	// GetActive returns the most recently started running session of the
	// user, or (nil, nil).
	GetActive(ctx context.Context, userID int64) (*models.Session, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	Insert(ctx context.Context, s *models.Session) (*models.Session, error)
	// Finish moves a running session to finished. common.ErrNotFound is
	// returned when no running session with that id exists.
	Finish(ctx context.Context, id int64, end time.Time, description *string) error
	ReplaceTags(ctx context.Context, id int64, tags []string) error
	Tags(ctx context.Context, id int64) ([]string, error)
	CancelRunning(ctx context.Context, userID int64, end time.Time) (int64, error)
	// ListFinished returns finished sessions with tags, newest start first.
	// A nil since means no lower bound.
	ListFinished(ctx context.Context, userID int64, since *time.Time) ([]*models.FinishedSession, error)
}
