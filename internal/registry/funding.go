// Package registry is the contribution ledger and funding engine for the
// honeymoon gift registry.
package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/store"
)

var (
	ErrItemNotFound         = errors.New("registry item not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrAlreadyFunded        = errors.New("item is already fully funded")
	ErrInvalidStatus        = errors.New("invalid contribution status")
	ErrInvalidAmount        = errors.New("contribution amount must be positive")
)

// Service owns contribution lifecycle and the derived funding totals cached
// on item rows.
type Service struct {
	items         *store.RegistryStore
	contributions *store.ContributionStore
	now           func() time.Time
}

func NewService(items *store.RegistryStore, contributions *store.ContributionStore) *Service {
	return &Service{
		items:         items,
		contributions: contributions,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Recompute re-derives the item's cached total and funded flag from the full
// set of its non-rejected contributions and writes them back. It is never
// incremental, so repeated or out-of-order invocations converge on the same
// result. Callers guarantee the item exists; a missing item surfaces as
// ErrItemNotFound.
func (s *Service) Recompute(itemID string) error {
	item, err := s.items.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	total, err := s.contributions.SumNonRejectedByItem(itemID)
	if err != nil {
		return err
	}

	funded := total >= item.PriceCents
	if err := s.items.SetItemTotals(itemID, total, funded); err != nil {
		return err
	}
	return nil
}

// CreateContribution records a public contribution. When an item is
// referenced it must exist and must not already be fully funded; general
// gifts (nil itemID) skip both checks and never touch item totals. The new
// contribution starts pending and immediately counts toward the item's
// displayed total.
func (s *Service) CreateContribution(itemID *string, name, email string, amountCents int64, anonymous bool, message, purpose string) (*model.RegistryContribution, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	if itemID != nil {
		item, err := s.items.GetItemByID(*itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrItemNotFound
		}
		if item.IsFullyFunded {
			return nil, ErrAlreadyFunded
		}
	}

	c, err := s.contributions.Create(itemID, name, email, amountCents, anonymous, message, purpose)
	if err != nil {
		return nil, err
	}

	if itemID != nil {
		if err := s.Recompute(*itemID); err != nil {
			// The contribution is already committed; the cached total lags
			// until the next successful recompute.
			return nil, fmt.Errorf("recompute after create: %w", err)
		}
	}
	return c, nil
}

// UpdateStatus moves a contribution through its lifecycle. confirmed_at is
// set exactly when the new status is confirmed and cleared otherwise, so
// demoting a confirmed contribution drops its confirmation timestamp. The
// item total is recomputed whenever an item is attached, even when the old
// and new status both counted (or both did not).
func (s *Service) UpdateStatus(id string, status model.ContributionStatus) (*model.RegistryContribution, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	existing, err := s.contributions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrContributionNotFound
	}

	var confirmedAt *time.Time
	if status == model.StatusConfirmed {
		t := s.now()
		confirmedAt = &t
	}

	updated, err := s.contributions.SetStatus(id, status, confirmedAt)
	if err != nil {
		return nil, err
	}

	if existing.ItemID != nil {
		if err := s.Recompute(*existing.ItemID); err != nil {
			return nil, fmt.Errorf("recompute after status change: %w", err)
		}
	}
	return updated, nil
}

// DeleteContribution physically removes a contribution. The item total is
// recomputed only when the removed row could have counted toward it: a
// rejected contribution never did, so its deletion cannot change the total.
func (s *Service) DeleteContribution(id string) error {
	existing, err := s.contributions.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrContributionNotFound
	}

	if err := s.contributions.Delete(id); err != nil {
		return err
	}

	if existing.ItemID != nil && existing.Status != model.StatusRejected {
		if err := s.Recompute(*existing.ItemID); err != nil {
			return fmt.Errorf("recompute after delete: %w", err)
		}
	}
	return nil
}

// ListContributions returns every contribution, newest first, for the admin
// review queue.
func (s *Service) ListContributions() ([]model.RegistryContribution, error) {
	return s.contributions.List()
}

// PublicView projects a contribution for the public registry page. The name
// collapses to "Anonymous" when the contributor asked for it or left the name
// blank; the email is dropped entirely.
func PublicView(c model.RegistryContribution) model.PublicContribution {
	name := c.ContributorName
	if c.IsAnonymous || name == "" {
		name = "Anonymous"
	}
	return model.PublicContribution{
		DisplayName: name,
		AmountCents: c.AmountCents,
		Message:     c.Message,
		CreatedAt:   c.CreatedAt,
	}
}

// ItemWithContributions returns an item with its public contribution feed.
func (s *Service) ItemWithContributions(itemID string) (*model.ItemWithContributions, error) {
	item, err := s.items.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	contributions, err := s.contributions.ListNonRejectedByItem(itemID)
	if err != nil {
		return nil, err
	}

	public := make([]model.PublicContribution, 0, len(contributions))
	for _, c := range contributions {
		public = append(public, PublicView(c))
	}
	return &model.ItemWithContributions{Item: *item, Contributions: public}, nil
}

// Catalog returns every category with its items, appending uncategorized
// items under a synthetic "Other" bucket when any exist.
func (s *Service) Catalog() ([]model.CategoryWithItems, error) {
	categories, err := s.items.ListCategories()
	if err != nil {
		return nil, err
	}

	result := make([]model.CategoryWithItems, 0, len(categories)+1)
	for _, category := range categories {
		items, err := s.items.ListItemsByCategory(category.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, model.CategoryWithItems{Category: category, Items: items})
	}

	uncategorized, err := s.items.ListUncategorizedItems()
	if err != nil {
		return nil, err
	}
	if len(uncategorized) > 0 {
		result = append(result, model.CategoryWithItems{
			Category: model.HoneymoonCategory{Name: "Other", DisplayOrder: 9999},
			Items:    uncategorized,
		})
	}
	return result, nil
}

// Stats is the admin aggregate. Unlike the optimistic per-item totals, the
// confirmed figure counts confirmed contributions only.
func (s *Service) Stats() (*model.RegistryStats, error) {
	confirmed, err := s.contributions.SumByStatus(model.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	pending, err := s.contributions.SumByStatus(model.StatusPending)
	if err != nil {
		return nil, err
	}
	contributionCount, err := s.contributions.Count()
	if err != nil {
		return nil, err
	}
	itemCount, err := s.items.CountItems()
	if err != nil {
		return nil, err
	}
	return &model.RegistryStats{
		TotalConfirmedCents: confirmed,
		TotalPendingCents:   pending,
		ContributionCount:   contributionCount,
		ItemCount:           itemCount,
	}, nil
}
