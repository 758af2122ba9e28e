package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/models"
	"github.com/dmitrijs2005/trackly/internal/timex"
)

const selectSession = `SELECT id, user_id, project_id, start_time, end_time, description, status FROM sessions`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetActive(ctx context.Context, userID int64) (*models.Session, error) {
	row := r.db.QueryRowContext(ctx, selectSession+`
		WHERE user_id = ? AND status = 'running'
		ORDER BY start_time DESC, id DESC
		LIMIT 1
	`, userID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, selectSession+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %d: %w", id, err)
	}
	return s, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, s *models.Session) (*models.Session, error) {
	var end *string
	if s.EndTime != nil {
		v := timex.FormatTimestamp(*s.EndTime)
		end = &v
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, project_id, start_time, end_time, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.UserID, s.ProjectID, timex.FormatTimestamp(s.StartTime), end, s.Description, string(s.Status),
		timex.FormatTimestamp(s.StartTime))
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read session id: %w", err)
	}
	s.ID = id
	return s, nil
}

func (r *SQLiteRepository) Finish(ctx context.Context, id int64, end time.Time, description *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET status = 'finished', end_time = ?, description = ?
		WHERE id = ? AND status = 'running'
	`, timex.FormatTimestamp(end), description, id)
	if err != nil {
		return fmt.Errorf("failed to finish session %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for session %d: %w", id, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ReplaceTags(ctx context.Context, id int64, tags []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_tags WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear tags of session %d: %w", id, err)
	}
	for _, tag := range tags {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO session_tags (session_id, tag) VALUES (?, ?)`, id, tag); err != nil {
			return fmt.Errorf("failed to insert tag of session %d: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Tags(ctx context.Context, id int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag FROM session_tags WHERE session_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of session %d: %w", id, err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tag rows: %w", err)
	}
	return tags, nil
}

func (r *SQLiteRepository) CancelRunning(ctx context.Context, userID int64, end time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET status = 'cancelled', end_time = ?
		WHERE user_id = ? AND status = 'running'
	`, timex.FormatTimestamp(end), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) ListFinished(ctx context.Context, userID int64, since *time.Time) ([]*models.FinishedSession, error) {
	query := `
		SELECT id, project_id, start_time, end_time, description FROM sessions
		WHERE user_id = ? AND status = 'finished'`
	args := []any{userID}
	if since != nil {
		query += ` AND start_time >= ?`
		args = append(args, timex.FormatTimestamp(*since))
	}
	query += ` ORDER BY start_time DESC, id DESC`

	list, err := r.queryFinished(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	for _, fs := range list {
		tags, err := r.Tags(ctx, fs.ID)
		if err != nil {
			return nil, err
		}
		fs.Tags = tags
	}
	return list, nil
}

func (r *SQLiteRepository) queryFinished(ctx context.Context, query string, args ...any) ([]*models.FinishedSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished sessions: %w", err)
	}
	defer rows.Close()

	var result []*models.FinishedSession
	for rows.Next() {
		var (
			fs          models.FinishedSession
			projectID   sql.NullInt64
			start, end  string
			description sql.NullString
		)
		if err := rows.Scan(&fs.ID, &projectID, &start, &end, &description); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		if projectID.Valid {
			fs.ProjectID = &projectID.Int64
		}
		if description.Valid {
			fs.Description = &description.String
		}
		if fs.StartTime, err = timex.ParseTimestamp(start); err != nil {
			return nil, fmt.Errorf("bad start_time %q: %w", start, err)
		}
		if fs.EndTime, err = timex.ParseTimestamp(end); err != nil {
			return nil, fmt.Errorf("bad end_time %q: %w", end, err)
		}
		result = append(result, &fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return result, nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var (
		s           models.Session
		projectID   sql.NullInt64
		start       string
		end         sql.NullString
		description sql.NullString
		status      string
	)
	if err := row.Scan(&s.ID, &s.UserID, &projectID, &start, &end, &description, &status); err != nil {
		return nil, err
	}
	if projectID.Valid {
		s.ProjectID = &projectID.Int64
	}
	if description.Valid {
		s.Description = &description.String
	}

	var err error
	if s.StartTime, err = timex.ParseTimestamp(start); err != nil {
		return nil, fmt.Errorf("bad start_time %q: %w", start, err)
	}
	if end.Valid {
		t, err := timex.ParseTimestamp(end.String)
		if err != nil {
			return nil, fmt.Errorf("bad end_time %q: %w", end.String, err)
		}
		s.EndTime = &t
	}
	if s.Status, err = models.ParseSessionStatus(status); err != nil {
		return nil, err
	}
	return &s, nil
}
