package model

import "time"

type Invite struct {
	ID         string    `json:"id"`
	UniqueCode string    `json:"unique_code"`
	InviteType string    `json:"invite_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// InviteWithGuests is the shape the admin UI works with: an invite plus the
// guests currently pointing at it.
type InviteWithGuests struct {
	Invite Invite  `json:"invite"`
	Guests []Guest `json:"guests"`
}
