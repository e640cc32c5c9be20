package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/models"
	"github.com/idris-r/jobs4/internal/payment/stripe"
)

func checkoutEvent(eventID string, userID uint, amount int64) (stripe.Event, []byte) {
	event := stripe.Event{
		ID:   eventID,
		Type: stripe.EventCheckoutSessionCompleted,
	}
	event.Data.Object = stripe.CheckoutSession{
		ID:                "cs_" + eventID,
		ClientReferenceID: fmt.Sprintf("%d", userID),
		AmountTotal:       amount,
	}
	payload, _ := json.Marshal(event)
	return event, payload
}

func TestProcessCheckoutCompletedTiers(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	cases := []struct {
		amount int64
		tokens int
	}{
		{499, 155},
		{999, 400},
		{50, 42}, // unknown amount falls back to the starter grant
	}

	for _, tc := range cases {
		user := models.User{Email: fmt.Sprintf("buyer%d@example.com", tc.amount), Password: "x", TokenBalance: 40}
		database.DB.Create(&user)

		event, payload := checkoutEvent(fmt.Sprintf("evt_%d", tc.amount), user.ID, tc.amount)
		granted, grantedTo, err := ProcessCheckoutCompleted(event, payload)
		assert.NoError(t, err)
		assert.Equal(t, tc.tokens, granted)
		assert.Equal(t, user.ID, grantedTo)

		var stored models.User
		database.DB.First(&stored, user.ID)
		assert.Equal(t, 40+tc.tokens, stored.TokenBalance)

		var entry models.TokenEntry
		database.DB.Where("user_id = ?", user.ID).Last(&entry)
		assert.Equal(t, tc.tokens, entry.Amount)
		assert.Equal(t, models.TokenActionPurchase, entry.Action)
	}
}

func TestProcessCheckoutCompletedRedelivery(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	user := models.User{Email: "repeat@example.com", Password: "x", TokenBalance: 40}
	database.DB.Create(&user)

	event, payload := checkoutEvent("evt_once", user.ID, 499)

	_, _, err := ProcessCheckoutCompleted(event, payload)
	assert.NoError(t, err)

	// Same event id delivered again: no second grant
	_, _, err = ProcessCheckoutCompleted(event, payload)
	assert.ErrorIs(t, err, ErrDuplicateEvent)

	var stored models.User
	database.DB.First(&stored, user.ID)
	assert.Equal(t, 40+155, stored.TokenBalance)

	var entries int64
	database.DB.Model(&models.TokenEntry{}).Where("user_id = ?", user.ID).Count(&entries)
	assert.Equal(t, int64(1), entries)
}

func TestProcessCheckoutCompletedBadReference(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	event, payload := checkoutEvent("evt_badref", 0, 499)
	event.Data.Object.ClientReferenceID = "not-a-number"

	_, _, err := ProcessCheckoutCompleted(event, payload)
	assert.ErrorIs(t, err, ErrInvalidAccountRef)
}

func TestProcessCheckoutCompletedUnknownUser(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	event, payload := checkoutEvent("evt_ghost", 12345, 499)

	_, _, err := ProcessCheckoutCompleted(event, payload)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// The whole transaction rolled back, so the event id is not burned and a
	// later re-delivery can still succeed.
	var events int64
	database.DB.Model(&models.WebhookEvent{}).Count(&events)
	assert.Equal(t, int64(0), events)
}
