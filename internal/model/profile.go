package model

import "time"

// Profile is the one-per-user record holding display settings. It is created
// implicitly when signup completes and never deleted by the application.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial field set for updating a profile.
// A pointer to "" clears the avatar.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (u *ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.AvatarURL == nil
}
