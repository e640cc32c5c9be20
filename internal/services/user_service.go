package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, userCacheKey(userID)).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, userCacheKey(userID), data, time.Hour)
		}
	}

	return user, nil
}

// DeleteAccount removes the user and all of its ledger rows in one
// transaction. Hard delete; there is no soft-delete or retention path.
func DeleteAccount(userID uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.TokenEntry{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return err
	}

	invalidateUserCache(userID)
	return nil
}

func invalidateUserCache(userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, userCacheKey(userID))
	}
}
