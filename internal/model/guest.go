package model

import "time"

// InviteType describes how a guest (or invite) receives correspondence.
const (
	InviteTypeSingle  = "single"
	InviteTypePlusOne = "plus_one"
	InviteTypeCouple  = "couple"
)

type Guest struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Relationship string    `json:"relationship"`
	SamOrJonah   string    `json:"sam_or_jonah"`
	Maybe        bool      `json:"maybe"`
	UniqueCode   string    `json:"unique_code"`
	InviteType   string    `json:"invite_type"`
	Removed      bool      `json:"removed"`
	InviteID     *string   `json:"invite_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
