package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/models"
)

var ErrInvalidAction = errors.New("unknown token action")

// ApplyDelta adds a signed delta to the user's balance and appends one ledger
// row, both in a single transaction. The balance update is an in-database
// increment, so two concurrent deltas for the same account cannot lose one
// another's write. Returns the resulting balance.
//
// No floor is enforced; a balance may go negative.
func ApplyDelta(userID uint, amount int, action models.TokenAction) (int, error) {
	if !action.Valid() {
		return 0, ErrInvalidAction
	}

	var newBalance int
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("token_balance", gorm.Expr("token_balance + ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		entry := models.TokenEntry{
			UserID: userID,
			Amount: amount,
			Action: action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Select("token_balance").First(&user, userID).Error; err != nil {
			return err
		}
		newBalance = user.TokenBalance
		return nil
	})
	if err != nil {
		return 0, err
	}

	invalidateUserCache(userID)
	return newBalance, nil
}

// TokenHistory returns the user's ledger entries, newest first.
func TokenHistory(userID uint) ([]models.TokenEntry, error) {
	var entries []models.TokenEntry
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
