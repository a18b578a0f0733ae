package model

import "time"

// UserProfile is one record per wallet address, created on first
// authentication. Balance is a snapshot in native-asset decimal units,
// not a live value.
type UserProfile struct {
	Pubkey      string    `json:"pubkey"`
	DisplayName string    `json:"displayName,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	LastLoginAt time.Time `json:"lastLoginAt"`
	Balance     string    `json:"balance"` // decimal string, SOL
}
