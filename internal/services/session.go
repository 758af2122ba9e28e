package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/identity"
	"github.com/dmitrijs2005/trackly/internal/logging"
	"github.com/dmitrijs2005/trackly/internal/models"
	"github.com/dmitrijs2005/trackly/internal/repositories/repomanager"
)

// SessionService drives the work-session state machine:
//
//	running -> finished   (Finalize)
//	running -> cancelled  (Cancel)
//
// A user has at most one running session. The check and the insert in Start
// run inside one Store.Tx, so concurrent starts cannot both succeed.
type SessionService struct {
	store       *dbx.Store
	repomanager repomanager.RepositoryManager
	cache       *identity.Cache
	log         logging.Logger
	now         func() time.Time
}

func NewSessionService(store *dbx.Store, m repomanager.RepositoryManager, cache *identity.Cache, log logging.Logger) *SessionService {
	return &SessionService{
		store:       store,
		repomanager: m,
		cache:       cache,
		log:         log.With("module", "sessions"),
		now:         time.Now,
	}
}

// Active returns the running session of the caller, or nil.
func (s *SessionService) Active(ctx context.Context) (*models.Session, error) {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return nil, err
	}

	var active *models.Session
	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		active, err = s.repomanager.Sessions(db).GetActive(ctx, uid)
		return err
	})
	if err != nil {
		return nil, storageErr("get active session", err)
	}
	return active, nil
}

// Start opens a new running session, optionally attached to an owned
// project.
func (s *SessionService) Start(ctx context.Context, projectID *int64) (*models.Session, error) {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return nil, err
	}

	var started *models.Session
	err = s.store.Tx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)

		active, err := repo.GetActive(ctx, uid)
		if err != nil {
			return err
		}
		if active != nil {
			return common.ErrSessionAlreadyActive
		}

		if projectID != nil {
			if _, err := s.repomanager.Projects(tx).Get(ctx, uid, *projectID); err != nil {
				return err
			}
		}

		started, err = repo.Insert(ctx, &models.Session{
			UserID:    uid,
			ProjectID: projectID,
			StartTime: s.now().UTC(),
			Status:    models.StatusRunning,
		})
		return err
	})
	if err != nil {
		return nil, storageErr("start session", err)
	}

	s.log.Info(ctx, "session started", "user_id", uid, "session_id", started.ID)
	return started, nil
}

// Finalize finishes a running session of the caller. Status, end time,
// description and the replacement tag set commit together or not at all.
// Unknown ids, sessions of other users and sessions that are not running
// all yield common.ErrInvalidSessionState.
func (s *SessionService) Finalize(ctx context.Context, sessionID int64, description string, tags []string) error {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return err
	}

	desc := optionalText(description)
	tags = normalizeTags(tags)

	err = s.store.Tx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)

		sess, err := repo.GetByID(ctx, sessionID)
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidSessionState
		}
		if err != nil {
			return err
		}
		if sess.UserID != uid || sess.Status != models.StatusRunning {
			return common.ErrInvalidSessionState
		}

		if err := repo.Finish(ctx, sessionID, s.now().UTC(), desc); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidSessionState
			}
			return err
		}
		return repo.ReplaceTags(ctx, sessionID, tags)
	})
	if err != nil {
		if !errors.Is(err, common.ErrInvalidSessionState) {
			s.log.Error(ctx, "finalize failed, rolled back", "user_id", uid, "session_id", sessionID, "error", err)
		}
		return storageErr("finalize session", err)
	}

	s.log.Info(ctx, "session finished", "user_id", uid, "session_id", sessionID, "tags", len(tags))
	return nil
}

// Cancel cancels every running session of the caller. Having none is fine.
func (s *SessionService) Cancel(ctx context.Context) error {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return err
	}

	var n int64
	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		n, err = s.repomanager.Sessions(db).CancelRunning(ctx, uid, s.now().UTC())
		return err
	})
	if err != nil {
		return storageErr("cancel session", err)
	}

	if n > 0 {
		s.log.Info(ctx, "session cancelled", "user_id", uid, "count", n)
	}
	return nil
}

// ListFinished returns the caller's finished sessions, newest first.
func (s *SessionService) ListFinished(ctx context.Context) ([]*models.FinishedSession, error) {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return nil, err
	}

	var list []*models.FinishedSession
	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		list, err = s.repomanager.Sessions(db).ListFinished(ctx, uid, nil)
		return err
	})
	if err != nil {
		return nil, storageErr("list finished sessions", err)
	}
	return list, nil
}
