package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/models"
	"github.com/dmitrijs2005/trackly/internal/timex"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) List(ctx context.Context, userID int64) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, color, created_at FROM projects
		WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	created := r.now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (user_id, name, color, created_at) VALUES (?, ?, ?, ?)
	`, p.UserID, p.Name, p.Color, timex.FormatTimestamp(created))
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read project id: %w", err)
	}
	p.ID = id
	p.CreatedAt = created
	return p, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, userID, id int64) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, color, created_at FROM projects
		WHERE id = ? AND user_id = ?
	`, id, userID)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return p, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, userID, id int64, upd models.ProjectUpdate) error {
	if upd.Empty() {
		// still report projects the caller does not own
		_, err := r.Get(ctx, userID, id)
		return err
	}

	b := sq.Update("projects").Where(sq.Eq{"id": id, "user_id": userID})
	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
	}
	if upd.Color != nil {
		b = b.Set("color", *upd.Color)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build project update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", id, err)
	}
	return affectedOne(res, id)
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return affectedOne(res, id)
}

func affectedOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for project %d: %w", id, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	var (
		p       models.Project
		created string
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &created); err != nil {
		return nil, err
	}
	t, err := timex.ParseTimestamp(created)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", created, err)
	}
	p.CreatedAt = t
	return &p, nil
}
