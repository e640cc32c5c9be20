package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/models"
)

func TestRegisterUser(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	user, err := RegisterUser("alice@example.com", "password123")
	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.DefaultTokenBalance, user.TokenBalance)

	// Password is stored only as a hash
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	// Second registration with the same email conflicts
	dup, err := RegisterUser("alice@example.com", "otherpassword")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, dup)
}

func TestLoginUser(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	registered, err := RegisterUser("bob@example.com", "password123")
	assert.NoError(t, err)
	assert.Nil(t, registered.LastLogin)

	// Wrong password
	_, _, err = LoginUser("bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email
	_, _, err = LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Correct credentials
	token, user, err := LoginUser("bob@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, user.LastLogin)

	// last_login is persisted
	var stored models.User
	database.DB.First(&stored, registered.ID)
	assert.NotNil(t, stored.LastLogin)
}
