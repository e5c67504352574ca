package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

func TestSession_Capabilities(t *testing.T) {
	user := NewSession("t", User{Role: entity.RoleUser})
	admin := NewSession("t", User{Role: entity.RoleAdmin})

	assert.True(t, user.Can(CapPlay))
	assert.False(t, user.Can(CapManageContent))
	assert.False(t, user.IsAdmin())

	assert.True(t, admin.Can(CapManageContent))
	assert.True(t, admin.Can(CapManageUsers))
	assert.True(t, admin.Can(CapViewAnalytics))

	var none *Session
	assert.False(t, none.Can(CapPlay))
}

func TestSession_SaveAndLoad(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	loc := uint(7)
	s := NewSession("token", User{ID: 3, Email: "a@b.c", Role: entity.RoleAdmin, SelectedLocation: &loc})

	// Act
	require.NoError(t, SaveSession(path, s))
	loaded, err := LoadSession(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "token", loaded.Token)
	assert.Equal(t, uint(3), loaded.User.ID)
	require.NotNil(t, loaded.SelectedLocation)
	assert.Equal(t, uint(7), *loaded.SelectedLocation)
	assert.True(t, loaded.Can(CapManageContent))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSession_LoadMissing(t *testing.T) {
	_, err := LoadSession(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, SaveSession(path, NewSession("t", User{})))

	require.NoError(t, ClearSession(path))
	require.NoError(t, ClearSession(path))

	_, err := LoadSession(path)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_SaveEmpty(t *testing.T) {
	assert.Error(t, SaveSession(filepath.Join(t.TempDir(), "s.json"), &Session{}))
}
