// Package services contains the business logic of trackly. Every operation
// except registration and login first resolves the current identity from
// the runtime cache and fails with common.ErrNotAuthenticated before any
// storage access. Storage runs through one lock-guarded dbx.Store; multi
// statement changes run inside Store.Tx.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/trackly/internal/avatar"
	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/config"
	"github.com/dmitrijs2005/trackly/internal/cryptox"
	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/identity"
	"github.com/dmitrijs2005/trackly/internal/logging"
	"github.com/dmitrijs2005/trackly/internal/models"
	"github.com/dmitrijs2005/trackly/internal/repositories/repomanager"
	"github.com/dmitrijs2005/trackly/internal/repositories/users"
)

// AuthService owns the identity lifecycle: register, login, restore on
// start, profile changes, avatar upload and logout. It keeps the runtime
// cache and its durable mirror consistent.
type AuthService struct {
	store       *dbx.Store
	repomanager repomanager.RepositoryManager
	cache       *identity.Cache
	avatars     avatar.Store
	minPassword int
	log         logging.Logger

	hash   func(password []byte) (string, error)
	verify func(encoded string, password []byte) bool

	dummyOnce sync.Once
	dummyHash string

	// set while a mirror row may exist that Restore could not read
	mirrorUnread atomic.Bool
}

// NewAuthService wires the service. avatars may be nil when avatar upload
// is not needed.
func NewAuthService(store *dbx.Store, m repomanager.RepositoryManager, cache *identity.Cache,
	avatars avatar.Store, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		store:       store,
		repomanager: m,
		cache:       cache,
		avatars:     avatars,
		minPassword: cfg.MinPasswordLength,
		log:         log.With("module", "auth"),
		hash:        cryptox.HashPassword,
		verify:      cryptox.VerifyPassword,
	}
}

// Register creates an account. It does not log the new user in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.PublicUser, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(password, s.minPassword); err != nil {
		return nil, err
	}

	hash, err := s.hash([]byte(password))
	if err != nil {
		return nil, storageErr("hash password", err)
	}

	name := defaultDisplayName(email)
	var user *models.User
	err = s.store.Tx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		existing, err := repo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return common.ErrDuplicateEmail
		}
		user, err = repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, DisplayName: &name})
		return err
	})
	if err != nil {
		if !errors.Is(err, common.ErrDuplicateEmail) {
			s.log.Error(ctx, "register failed", "error", err)
		}
		return nil, storageErr("register", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user.Public(), nil
}

// Login verifies the credentials, persists the durable mirror and only then
// points the runtime cache at the user. If the mirror cannot be written the
// cache is left as it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		s.burnVerify(password)
		return nil, common.ErrInvalidCredentials
	}

	var user *models.User
	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(db).FindByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, storageErr("find user", err)
	}

	if user == nil {
		s.burnVerify(password)
		s.log.Info(ctx, "login rejected")
		return nil, common.ErrInvalidCredentials
	}
	if !s.verify(user.PasswordHash, []byte(password)) {
		s.log.Info(ctx, "login rejected")
		return nil, common.ErrInvalidCredentials
	}

	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		return s.repomanager.AppSession(db).Set(ctx, user.ID)
	})
	if err != nil {
		s.log.Error(ctx, "persist app session failed", "user_id", user.ID, "error", err)
		return nil, storageErr("persist app session", err)
	}

	s.mirrorUnread.Store(false)
	s.cache.Set(user.ID)
	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return user.Public(), nil
}

// burnVerify spends the same work as a real verification so that unknown
// emails are not distinguishable by timing.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		h, err := s.hash([]byte("trackly-dummy-password"))
		if err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash != "" {
		_ = s.verify(s.dummyHash, []byte(password))
	}
}

// Restore repopulates the runtime cache from the durable mirror. It must run
// before any request is served. A missing mirror is not an error; a mirror
// pointing at a vanished user is removed.
func (s *AuthService) Restore(ctx context.Context) error {
	var (
		userID int64
		found  bool
	)
	err := s.store.Tx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		mirror := s.repomanager.AppSession(tx)
		id, ok, err := mirror.Get(ctx)
		if err != nil || !ok {
			return err
		}

		_, err = s.repomanager.Users(tx).GetByID(ctx, id)
		if errors.Is(err, common.ErrNotFound) {
			s.log.Warn(ctx, "app session references missing user, clearing", "user_id", id)
			return mirror.Delete(ctx)
		}
		if err != nil {
			return err
		}

		userID, found = id, true
		return nil
	})
	if err != nil {
		s.mirrorUnread.Store(true)
		return storageErr("restore app session", err)
	}
	s.mirrorUnread.Store(false)

	if found {
		s.cache.Set(userID)
		s.log.Info(ctx, "session restored", "user_id", userID)
	}
	return nil
}

// RequireIdentity returns the logged-in user id or common.ErrNotAuthenticated.
func (s *AuthService) RequireIdentity() (int64, error) {
	return requireIdentity(s.cache)
}

// CurrentIdentity returns the logged-in user.
func (s *AuthService) CurrentIdentity(ctx context.Context) (*models.PublicUser, error) {
	id, err := s.RequireIdentity()
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(db).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return user.Public(), nil
}

// UpdateProfile applies a partial profile change. A new password requires
// the current one. A new email must not belong to another account.
func (s *AuthService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.PublicUser, error) {
	id, err := s.RequireIdentity()
	if err != nil {
		return nil, err
	}

	var change users.Update
	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		if name == "" {
			return nil, common.ErrInvalidName
		}
		change.DisplayName = &name
	}
	if upd.Email != nil {
		email, err := NormalizeEmail(*upd.Email)
		if err != nil {
			return nil, err
		}
		change.Email = &email
	}
	if upd.Password != nil {
		if upd.CurrentPassword == nil || *upd.CurrentPassword == "" {
			return nil, common.ErrMissingCredential
		}
		if err := checkPassword(*upd.Password, s.minPassword); err != nil {
			return nil, err
		}
	}

	var user *models.User
	err = s.store.Tx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if upd.Password != nil {
			if !s.verify(current.PasswordHash, []byte(*upd.CurrentPassword)) {
				return common.ErrWrongCredential
			}
			hash, err := s.hash([]byte(*upd.Password))
			if err != nil {
				return err
			}
			change.PasswordHash = &hash
		}

		if change.Email != nil && *change.Email != current.Email {
			taken, err := repo.EmailTaken(ctx, *change.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return common.ErrDuplicateEmail
			}
		}

		if err := repo.Update(ctx, id, change); err != nil {
			return err
		}
		user, err = repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storageErr("update profile", err)
	}

	s.log.Info(ctx, "profile updated", "user_id", id,
		"display_name", change.DisplayName != nil, "email", change.Email != nil, "password", change.PasswordHash != nil)
	return user.Public(), nil
}

// UploadAvatar validates the image, scales it down to the avatar size, hands
// the re-encoded copy to the avatar store and records the returned locator on
// the user.
func (s *AuthService) UploadAvatar(ctx context.Context, data []byte) (string, error) {
	id, err := s.RequireIdentity()
	if err != nil {
		return "", err
	}
	if s.avatars == nil {
		return "", storageErr("upload avatar", errors.New("avatar storage not configured"))
	}

	img, err := avatar.Decode(data)
	if err != nil {
		return "", err
	}
	img, err = avatar.Resize(img)
	if err != nil {
		return "", storageErr("resize avatar", err)
	}

	locator, err := s.avatars.Save(ctx, id, img)
	if err != nil {
		s.log.Error(ctx, "avatar save failed", "user_id", id, "error", err)
		return "", storageErr("save avatar", err)
	}

	err = s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		return s.repomanager.Users(db).SetAvatar(ctx, id, locator)
	})
	if err != nil {
		return "", storageErr("set avatar", err)
	}

	s.log.Info(ctx, "avatar updated", "user_id", id, "format", img.Format)
	return locator, nil
}

// Logout clears the runtime cache unconditionally, then removes the durable
// mirror. A failed removal is still reported. When nobody is logged in it
// fails with common.ErrNotAuthenticated, unless Restore could not read the
// mirror: then the mirror is removed so the next start comes up logged out.
func (s *AuthService) Logout(ctx context.Context) error {
	id, err := s.RequireIdentity()
	if err != nil {
		if !s.mirrorUnread.Load() {
			return err
		}
		if err := s.deleteMirror(ctx); err != nil {
			s.log.Error(ctx, "delete unrestored app session failed", "error", err)
			return storageErr("delete app session", err)
		}
		s.mirrorUnread.Store(false)
		s.log.Info(ctx, "unrestored app session removed")
		return nil
	}

	s.cache.Clear()

	if err := s.deleteMirror(ctx); err != nil {
		s.log.Error(ctx, "delete app session failed", "user_id", id, "error", err)
		return storageErr("delete app session", err)
	}

	s.log.Info(ctx, "user logged out", "user_id", id)
	return nil
}

func (s *AuthService) deleteMirror(ctx context.Context) error {
	return s.store.Do(ctx, func(ctx context.Context, db dbx.DBTX) error {
		return s.repomanager.AppSession(db).Delete(ctx)
	})
}
