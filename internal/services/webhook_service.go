package services

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/models"
	"github.com/idris-r/jobs4/internal/payment/stripe"
)

var (
	ErrDuplicateEvent    = errors.New("event already processed")
	ErrInvalidAccountRef = errors.New("invalid account reference in event")
)

// ProcessCheckoutCompleted turns a verified checkout.session.completed event
// into a token grant. Recording the event id and applying the grant happen in
// the same transaction, so a re-delivered event either sees its id already
// recorded (ErrDuplicateEvent) or the whole grant rolls back.
func ProcessCheckoutCompleted(event stripe.Event, payload []byte) (int, uint, error) {
	session := event.Data.Object

	ref, err := strconv.ParseUint(session.ClientReferenceID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAccountRef, session.ClientReferenceID)
	}
	userID := uint(ref)

	tokens := stripe.TokensForAmount(session.AmountTotal)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.WebhookEvent
		result := tx.Where("event_id = ?", event.ID).First(&existing)
		if result.Error == nil {
			return ErrDuplicateEvent
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		record := models.WebhookEvent{
			EventID: event.ID,
			Type:    event.Type,
			Payload: datatypes.JSON(payload),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		update := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("token_balance", gorm.Expr("token_balance + ?", tokens))
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return ErrUserNotFound
		}

		entry := models.TokenEntry{
			UserID: userID,
			Amount: tokens,
			Action: models.TokenActionPurchase,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return 0, userID, err
	}

	invalidateUserCache(userID)
	return tokens, userID, nil
}
