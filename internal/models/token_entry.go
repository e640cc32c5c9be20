package models

import "time"

// TokenAction labels a balance-affecting event. The set is closed; handlers
// reject anything else before it reaches the ledger.
type TokenAction string

const (
	TokenActionPurchase   TokenAction = "PURCHASE"
	TokenActionSpend      TokenAction = "SPEND"
	TokenActionAPIRequest TokenAction = "API_REQUEST"
	TokenActionAdjustment TokenAction = "ADJUSTMENT"
	TokenActionRefund     TokenAction = "REFUND"
)

// Valid reports whether the action is one of the known labels.
func (a TokenAction) Valid() bool {
	switch a {
	case TokenActionPurchase, TokenActionSpend, TokenActionAPIRequest,
		TokenActionAdjustment, TokenActionRefund:
		return true
	}
	return false
}

// TokenEntry is one immutable row of the token ledger. Amount is the signed
// delta applied to the balance, not the resulting balance.
type TokenEntry struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	UserID    uint        `gorm:"index;not null" json:"user_id"`
	Amount    int         `gorm:"not null" json:"amount"`
	Action    TokenAction `gorm:"type:varchar(50);not null" json:"action"`
	CreatedAt time.Time   `gorm:"column:timestamp" json:"timestamp"`
}

func (TokenEntry) TableName() string {
	return "tokens_history"
}
