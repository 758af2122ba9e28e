package appsession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (int64, bool, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM app_session WHERE id = ?`, common.AppSessionID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get app session: %w", err)
	}
	return userID, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_session (id, user_id) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id
	`, common.AppSessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to set app session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM app_session WHERE id = ?`, common.AppSessionID)
	if err != nil {
		return fmt.Errorf("failed to delete app session: %w", err)
	}
	return nil
}
