package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Foo.Bar@Example.ORG\n")
	require.NoError(t, err)
	assert.Equal(t, "foo.bar@example.org", got)

	for _, bad := range []string{"", "   ", "foo", "@x.io", "foo@", "a@b@c", "a b@x.io"} {
		_, err := NormalizeEmail(bad)
		assert.ErrorIs(t, err, common.ErrInvalidEmail, bad)
	}
}

func TestDefaultDisplayName(t *testing.T) {
	assert.Equal(t, "foo.bar", defaultDisplayName("foo.bar@example.org"))
}

func TestCheckPassword(t *testing.T) {
	require.NoError(t, checkPassword("secret", 6))
	require.ErrorIs(t, checkPassword("short", 6), common.ErrPasswordTooShort)
	require.NoError(t, checkPassword("пароль", 6), "counted in runes")
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, normalizeTags([]string{" a", "b ", "", "a", "  ", "c", "b"}))
	assert.Empty(t, normalizeTags(nil))
	assert.NotNil(t, normalizeTags(nil))
}

func TestStorageErr(t *testing.T) {
	assert.NoError(t, storageErr("op", nil))

	dom := fmt.Errorf("wrapped: %w", common.ErrSessionAlreadyActive)
	assert.Same(t, dom, storageErr("op", dom))

	raw := errors.New("database is locked")
	err := storageErr("start session", raw)
	require.ErrorIs(t, err, common.ErrStorage)
	assert.NotErrorIs(t, err, raw, "driver errors are not exposed")
	assert.Equal(t, "storage failure: start session: database is locked", err.Error())
}
