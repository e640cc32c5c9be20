package users

import "time"

// ProfileResponse mirrors the account fields the frontend renders.
type ProfileResponse struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	TokenBalance int        `json:"token_balance"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// TokenUpdateInput applies a signed delta to the caller's balance. Amount is
// a pointer so an explicit zero still satisfies the required binding.
type TokenUpdateInput struct {
	Amount *int   `json:"amount" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type TokenUpdateResponse struct {
	NewBalance int `json:"newBalance"`
}
