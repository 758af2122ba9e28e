package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/trackly/internal/avatar"
	"github.com/dmitrijs2005/trackly/internal/config"
	"github.com/dmitrijs2005/trackly/internal/cryptox"
	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/identity"
	"github.com/dmitrijs2005/trackly/internal/logging"
	"github.com/dmitrijs2005/trackly/internal/repositories/repomanager"
	"github.com/dmitrijs2005/trackly/internal/storage"
	"github.com/stretchr/testify/require"
)

var testParams = cryptox.Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func cheapHash(p []byte) (string, error) {
	return cryptox.HashPasswordWithParams(p, testParams)
}

type fakeAvatarStore struct {
	saved   []*avatar.Image
	locator string
	err     error
}

func (f *fakeAvatarStore) Save(ctx context.Context, userID int64, img *avatar.Image) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, img)
	return f.locator, nil
}

type env struct {
	store    *dbx.Store
	rm       repomanager.RepositoryManager
	cache    *identity.Cache
	logs     *bytes.Buffer
	avatars  *fakeAvatarStore
	auth     *AuthService
	projects *ProjectService
	sessions *SessionService
	stats    *StatsService
	clock    time.Time
}

func openStore(t *testing.T, path string) *dbx.Store {
	t.Helper()
	store, err := storage.Open(context.Background(), path, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newEnvWithStore(t *testing.T, store *dbx.Store, rm repomanager.RepositoryManager) *env {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	e := &env{
		store:   store,
		rm:      rm,
		cache:   identity.NewCache(),
		logs:    &bytes.Buffer{},
		avatars: &fakeAvatarStore{locator: "avatars/a.png"},
		clock:   time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	log := logging.NewJSONLogger(e.logs, "debug")

	e.auth = NewAuthService(store, rm, e.cache, e.avatars, cfg, log)
	e.auth.hash = cheapHash
	e.projects = NewProjectService(store, rm, e.cache, log)
	e.sessions = NewSessionService(store, rm, e.cache, log)
	e.sessions.now = func() time.Time { return e.clock }
	e.stats = NewStatsService(store, rm, e.cache)
	e.stats.now = func() time.Time { return e.clock }
	return e
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWithStore(t, openStore(t, storage.MemoryPath), repomanager.NewSQLiteRepositoryManager())
}

// loggedIn registers and logs in email, returning its id.
func (e *env) loggedIn(t *testing.T, email string) int64 {
	t.Helper()
	ctx := context.Background()
	_, err := e.auth.Register(ctx, email, "secret1")
	require.NoError(t, err)
	u, err := e.auth.Login(ctx, email, "secret1")
	require.NoError(t, err)
	return u.ID
}

func (e *env) advance(d time.Duration) {
	e.clock = e.clock.Add(d)
}

func i64(v int64) *int64 { return &v }
func strp(s string) *string { return &s }
