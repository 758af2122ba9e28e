package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/identity"
	"github.com/dmitrijs2005/trackly/internal/logging"
	"github.com/dmitrijs2005/trackly/internal/models"
	"github.com/dmitrijs2005/trackly/internal/repositories/repomanager"
)

// ProjectService is plain CRUD over the caller's projects.
type ProjectService struct {
	store       *dbx.Store
	repomanager repomanager.RepositoryManager
	cache       *identity.Cache
	log         logging.Logger
}

func NewProjectService(store *dbx.Store, m repomanager.RepositoryManager, cache *identity.Cache, log logging.Logger) *ProjectService {
	return &ProjectService{store: store, repomanager: m, cache: cache, log: log.With("module", "projects")}
}

func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return nil, err
	}

	var list []*models.Project
	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		list, err = s.repomanager.Projects(db).List(ctx, uid)
		return err
	})
	if err != nil {
		return nil, storageErr("list projects", err)
	}
	return list, nil
}

// Create adds a project. An empty color falls back to the default.
func (s *ProjectService) Create(ctx context.Context, name, color string) (*models.Project, error) {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrInvalidName
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = common.DefaultProjectColor
	}

	var p *models.Project
	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		p, err = s.repomanager.Projects(db).Create(ctx, &models.Project{UserID: uid, Name: name, Color: color})
		return err
	})
	if err != nil {
		return nil, storageErr("create project", err)
	}

	s.log.Info(ctx, "project created", "user_id", uid, "project_id", p.ID)
	return p, nil
}

// Update changes the supplied fields of an owned project and returns it.
func (s *ProjectService) Update(ctx context.Context, id int64, upd models.ProjectUpdate) (*models.Project, error) {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, common.ErrInvalidName
		}
		upd.Name = &name
	}
	if upd.Color != nil {
		color := strings.TrimSpace(*upd.Color)
		if color == "" {
			color = common.DefaultProjectColor
		}
		upd.Color = &color
	}

	var p *models.Project
	err = s.store.Tx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)
		if err := repo.Update(ctx, uid, id, upd); err != nil {
			return err
		}
		var err error
		p, err = repo.Get(ctx, uid, id)
		return err
	})
	if err != nil {
		return nil, storageErr("update project", err)
	}
	return p, nil
}

// Delete removes an owned project. Its sessions stay, detached.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	uid, err := requireIdentity(s.cache)
	if err != nil {
		return err
	}

	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		return s.repomanager.Projects(db).Delete(ctx, uid, id)
	})
	if err != nil {
		return storageErr("delete project", err)
	}

	s.log.Info(ctx, "project deleted", "user_id", uid, "project_id", id)
	return nil
}
