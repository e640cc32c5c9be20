package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/models"
)

func TestFindUserByIDCaches(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	user := models.User{Email: "frank@example.com", Password: "x", TokenBalance: 40}
	database.DB.Create(&user)

	found, err := FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	// Second lookup is served from cache
	assert.True(t, mr.Exists(fmt.Sprintf("user:%d", user.ID)))

	_, err = FindUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccount(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	user := models.User{Email: "grace@example.com", Password: "x", TokenBalance: 40}
	database.DB.Create(&user)
	database.DB.Create(&models.TokenEntry{UserID: user.ID, Amount: -1, Action: models.TokenActionAPIRequest})
	database.DB.Create(&models.TokenEntry{UserID: user.ID, Amount: 155, Action: models.TokenActionPurchase})

	err := DeleteAccount(user.ID)
	assert.NoError(t, err)

	// Ledger rows are gone with the account
	var entries int64
	database.DB.Model(&models.TokenEntry{}).Where("user_id = ?", user.ID).Count(&entries)
	assert.Equal(t, int64(0), entries)

	_, err = FindUserByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Deleting again reports the account as missing
	err = DeleteAccount(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
