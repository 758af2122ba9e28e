package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/identity"
	"github.com/dmitrijs2005/trackly/internal/models"
	"github.com/dmitrijs2005/trackly/internal/repositories/repomanager"
)

// StatsService summarizes finished sessions.
type StatsService struct {
	store       *dbx.Store
	repomanager repomanager.RepositoryManager
	cache       *identity.Cache
	now         func() time.Time
}

func NewStatsService(store *dbx.Store, m repomanager.RepositoryManager, cache *identity.Cache) *StatsService {
	return &StatsService{store: store, repomanager: m, cache: cache, now: time.Now}
}

// Summary aggregates sessions started within the last days days; days <= 0
// covers everything. Sessions without a project are counted under key 0.
func (s *StatsService) Summary(ctx context.Context, days int) (*models.Stats, error) {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return nil, err
	}

	var since *time.Time
	if days > 0 {
		t := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
		since = &t
	}

	var list []*models.FinishedSession
	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		list, err = s.repomanager.Sessions(db).ListFinished(ctx, uid, since)
		return err
	})
	if err != nil {
		return nil, storageErr("list finished sessions", err)
	}

	st := &models.Stats{
		Since:     since,
		ByTag:     map[string]time.Duration{},
		ByProject: map[int64]time.Duration{},
	}
	for _, fs := range list {
		d := fs.Duration()
		st.Sessions++
		st.Total += d
		for _, tag := range fs.Tags {
			st.ByTag[tag] += d
		}
		var pid int64
		if fs.ProjectID != nil {
			pid = *fs.ProjectID
		}
		st.ByProject[pid] += d
	}
	return st, nil
}
