package model

import "time"

type HoneymoonCategory struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// HoneymoonItem is a fundable registry entry. TotalContributedCents and
// IsFullyFunded are cached aggregates re-derived from the contribution rows;
// they are never adjusted incrementally.
type HoneymoonItem struct {
	ID                    string    `json:"id"`
	CategoryID            *string   `json:"category_id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	PriceCents            int64     `json:"price_cents"`
	ImageURL              *string   `json:"image_url"`
	TotalContributedCents int64     `json:"total_contributed_cents"`
	IsFullyFunded         bool      `json:"is_fully_funded"`
	DisplayOrder          int       `json:"display_order"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ContributionStatus is the lifecycle state of a contribution. Only rejected
// contributions are excluded from an item's funded total.
type ContributionStatus string

const (
	StatusPending   ContributionStatus = "pending"
	StatusConfirmed ContributionStatus = "confirmed"
	StatusRejected  ContributionStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ContributionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

type RegistryContribution struct {
	ID               string             `json:"id"`
	ItemID           *string            `json:"item_id"`
	ContributorName  string             `json:"contributor_name"`
	ContributorEmail string             `json:"contributor_email"`
	AmountCents      int64              `json:"amount_cents"`
	Status           ContributionStatus `json:"status"`
	IsAnonymous      bool               `json:"is_anonymous"`
	Message          string             `json:"message"`
	Purpose          string             `json:"purpose"`
	ConfirmedAt      *time.Time         `json:"confirmed_at"`
	CreatedAt        time.Time          `json:"created_at"`
}

// PublicContribution is the projection shown on the public registry page.
// Contributor emails never leave the admin surface.
type PublicContribution struct {
	DisplayName string    `json:"display_name"`
	AmountCents int64     `json:"amount_cents"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryWithItems struct {
	Category HoneymoonCategory `json:"category"`
	Items    []HoneymoonItem   `json:"items"`
}

type ItemWithContributions struct {
	Item          HoneymoonItem        `json:"item"`
	Contributions []PublicContribution `json:"contributions"`
}

// RegistryStats is the admin-facing aggregate. TotalConfirmedCents counts
// confirmed contributions only, unlike the optimistic per-item totals.
type RegistryStats struct {
	TotalConfirmedCents int64 `json:"total_confirmed_cents"`
	TotalPendingCents   int64 `json:"total_pending_cents"`
	ContributionCount   int64 `json:"contribution_count"`
	ItemCount           int64 `json:"item_count"`
}
