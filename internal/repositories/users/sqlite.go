package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/models"
	"github.com/dmitrijs2005/trackly/internal/timex"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const selectUser = `SELECT id, email, password_hash, display_name, avatar_url, email_verified, created_at FROM users`

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created := r.now().UTC()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, display_name, avatar_url, email_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.Email, user.PasswordHash, user.DisplayName, user.AvatarURL, user.EmailVerified, timex.FormatTimestamp(created))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = created
	return user, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

func (r *SQLiteRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? AND id <> ?`, email, exceptID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, upd Update) error {
	if upd.Empty() {
		return nil
	}

	b := sq.Update("users").Where(sq.Eq{"id": id})
	if upd.DisplayName != nil {
		b = b.Set("display_name", *upd.DisplayName)
	}
	if upd.Email != nil {
		b = b.Set("email", *upd.Email)
	}
	if upd.PasswordHash != nil {
		b = b.Set("password_hash", *upd.PasswordHash)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return requireOneRow(res, id)
}

func (r *SQLiteRepository) SetAvatar(ctx context.Context, id int64, locator string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET avatar_url = ? WHERE id = ?`, locator, id)
	if err != nil {
		return fmt.Errorf("failed to set avatar for user %d: %w", id, err)
	}
	return requireOneRow(res, id)
}

func requireOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for user %d: %w", id, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u       models.User
		name    sql.NullString
		avatar  sql.NullString
		created string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &avatar, &u.EmailVerified, &created); err != nil {
		return nil, err
	}
	if name.Valid {
		u.DisplayName = &name.String
	}
	if avatar.Valid {
		u.AvatarURL = &avatar.String
	}
	t, err := timex.ParseTimestamp(created)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", created, err)
	}
	u.CreatedAt = t
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(se.Code() == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"))
	}
	return false
}
