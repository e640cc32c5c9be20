package models

import "time"

// DefaultTokenBalance is granted to every new account at registration.
const DefaultTokenBalance = 40

type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	TokenBalance int        `gorm:"not null;default:40" json:"token_balance"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}
