package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BeforeSave не использует tx, но сигнатура хука его требует
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange
	plainPassword := "mySecretPassword123"
	user := &User{Email: "test@example.com", Password: plainPassword}

	// Act
	err := user.BeforeSave(mockTx)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, plainPassword, user.Password, "Пароль должен быть изменён после хеширования")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword)))
}

func TestUser_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	// Arrange
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Email: "test@example.com", Password: string(hashedPassword)}

	// Act
	err = user.BeforeSave(mockTx)

	// Assert: нет двойного хеширования
	require.NoError(t, err)
	assert.Equal(t, string(hashedPassword), user.Password)
}

func TestUser_BeforeSave_SkipsEmptyPassword(t *testing.T) {
	user := &User{Email: "test@example.com"}

	require.NoError(t, user.BeforeSave(mockTx))
	assert.Empty(t, user.Password)
}

func TestUser_CheckPassword(t *testing.T) {
	// Arrange
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("correctPassword123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Email: "test@example.com", Password: string(hashedPassword)}

	// Act & Assert
	assert.True(t, user.CheckPassword("correctPassword123"))
	assert.False(t, user.CheckPassword("wrongPassword456"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_IsActive(t *testing.T) {
	locationID := uint(3)

	assert.False(t, (&User{}).IsActive(), "Без выбранной локации пользователь неактивен")
	assert.True(t, (&User{SelectedLocationID: &locationID}).IsActive())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{" ADMIN ", RoleAdmin},
		{"user", RoleUser},
		{"superuser", RoleUser},
		{"", RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRole(tt.in))
		})
	}
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
}

func TestUser_TableName(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
}
