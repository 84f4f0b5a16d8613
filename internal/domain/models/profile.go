package models

import "time"

type Profile struct {
	ID        string    `json:"id" db:"id"` // Same as the auth user id
	Username  string    `json:"username" db:"username"`
	FullName  *string   `json:"full_name" db:"full_name"`
	AvatarURL *string   `json:"avatar_url" db:"avatar_url"`
	Website   *string   `json:"website" db:"website"`
	Bio       *string   `json:"bio" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileSummary is the author info attached to listed prompts.
type ProfileSummary struct {
	ID        string  `json:"id"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}
