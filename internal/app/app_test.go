package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/trackly/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabasePath = filepath.Join(dir, "trackly.db")
	c.AvatarDir = filepath.Join(dir, "avatars")
	c.LogLevel = "debug"
	return c
}

func runScript(t *testing.T, c *config.Config, lines ...string) (string, string) {
	t.Helper()
	var out, logs bytes.Buffer
	a, err := NewApp(context.Background(), c, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, &logs)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))
	return out.String(), logs.String()
}

func TestRun_LoginIsRememberedAcrossRestarts(t *testing.T) {
	c := testConfig(t)

	out, logs := runScript(t, c,
		"register", "carol@example.com", "pa55word",
		"login", "carol@example.com", "pa55word",
		"start",
		"stop", "first session", "go,cli",
		"history",
		"exit",
	)
	assert.Contains(t, out, "Registered carol@example.com")
	assert.Contains(t, out, "Welcome, carol!")
	assert.Contains(t, out, "Started session 1")
	assert.Contains(t, out, "first session  [go, cli]")
	assert.NotContains(t, logs, "pa55word")

	out, _ = runScript(t, c, "whoami", "logout", "exit")
	assert.Contains(t, out, "Logged in as carol@example.com")
	assert.Contains(t, out, "carol <carol@example.com>")
	assert.Contains(t, out, "Logged out.")

	out, _ = runScript(t, c, "whoami")
	assert.NotContains(t, out, "Logged in as")
	assert.Contains(t, out, "Please log in first.")
}

func TestNewApp_BadDatabasePath(t *testing.T) {
	c := testConfig(t)
	c.DatabasePath = filepath.Join(t.TempDir(), "missing", "dir", "trackly.db")

	_, err := NewApp(context.Background(), c, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewApp_BadAvatarBackend(t *testing.T) {
	c := testConfig(t)
	c.AvatarBackend = "ftp"

	_, err := NewApp(context.Background(), c, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "avatar store init error")
}

func TestMigrate(t *testing.T) {
	c := testConfig(t)
	var logs bytes.Buffer
	require.NoError(t, Migrate(context.Background(), c, &logs))
	require.NoError(t, Migrate(context.Background(), c, &logs))
	assert.Contains(t, logs.String(), "schema is up to date")
}
