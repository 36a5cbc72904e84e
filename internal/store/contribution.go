package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samandjonah/wedding-api/internal/model"
)

type ContributionStore struct {
	db *sql.DB
}

func NewContributionStore(db *sql.DB) *ContributionStore {
	return &ContributionStore{db: db}
}

const contributionCols = `id, item_id, contributor_name, contributor_email, amount_cents, status, is_anonymous, message, purpose, confirmed_at, created_at`

func scanContribution(scanner interface{ Scan(...any) error }) (*model.RegistryContribution, error) {
	var c model.RegistryContribution
	var itemID sql.NullString
	var confirmedAt sql.NullTime
	var anonymous int
	var status string

	err := scanner.Scan(
		&c.ID, &itemID, &c.ContributorName, &c.ContributorEmail, &c.AmountCents,
		&status, &anonymous, &c.Message, &c.Purpose, &confirmedAt, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status = model.ContributionStatus(status)
	c.IsAnonymous = anonymous != 0
	if itemID.Valid {
		c.ItemID = &itemID.String
	}
	if confirmedAt.Valid {
		c.ConfirmedAt = &confirmedAt.Time
	}
	return &c, nil
}

// Create inserts a contribution in pending state. Item existence and funding
// checks belong to the registry service, not here.
func (s *ContributionStore) Create(itemID *string, name, email string, amountCents int64, anonymous bool, message, purpose string) (*model.RegistryContribution, error) {
	id := uuid.New().String()
	var item sql.NullString
	if itemID != nil {
		item = sql.NullString{String: *itemID, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO registry_contributions (id, item_id, contributor_name, contributor_email, amount_cents, status, is_anonymous, message, purpose)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, item, name, email, amountCents, string(model.StatusPending), boolToInt(anonymous), message, purpose,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contribution: %w", err)
	}
	return s.GetByID(id)
}

func (s *ContributionStore) GetByID(id string) (*model.RegistryContribution, error) {
	row := s.db.QueryRow(`SELECT `+contributionCols+` FROM registry_contributions WHERE id = ?`, id)
	c, err := scanContribution(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contribution: %w", err)
	}
	return c, nil
}

func (s *ContributionStore) List() ([]model.RegistryContribution, error) {
	rows, err := s.db.Query(`SELECT ` + contributionCols + ` FROM registry_contributions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()
	return collectContributions(rows)
}

// ListNonRejectedByItem returns the contributions counted toward an item's
// public total, newest first.
func (s *ContributionStore) ListNonRejectedByItem(itemID string) ([]model.RegistryContribution, error) {
	rows, err := s.db.Query(
		`SELECT `+contributionCols+` FROM registry_contributions WHERE item_id = ? AND status != ? ORDER BY created_at DESC`,
		itemID, string(model.StatusRejected),
	)
	if err != nil {
		return nil, fmt.Errorf("list contributions by item: %w", err)
	}
	defer rows.Close()
	return collectContributions(rows)
}

// SumNonRejectedByItem is the funding aggregate: the sum of every pending or
// confirmed contribution against the item, zero when there are none.
func (s *ContributionStore) SumNonRejectedByItem(itemID string) (int64, error) {
	var total int64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount_cents), 0) FROM registry_contributions WHERE item_id = ? AND status != ?`,
		itemID, string(model.StatusRejected),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum contributions: %w", err)
	}
	return total, nil
}

func (s *ContributionStore) SumByStatus(status model.ContributionStatus) (int64, error) {
	var total int64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount_cents), 0) FROM registry_contributions WHERE status = ?`,
		string(status),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum contributions by status: %w", err)
	}
	return total, nil
}

func (s *ContributionStore) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM registry_contributions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count contributions: %w", err)
	}
	return count, nil
}

// SetStatus writes the new status and confirmation timestamp. confirmedAt is
// nil for every status except confirmed.
func (s *ContributionStore) SetStatus(id string, status model.ContributionStatus, confirmedAt *time.Time) (*model.RegistryContribution, error) {
	var at sql.NullTime
	if confirmedAt != nil {
		at = sql.NullTime{Time: *confirmedAt, Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE registry_contributions SET status = ?, confirmed_at = ? WHERE id = ?`,
		string(status), at, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set contribution status: %w", err)
	}
	return s.GetByID(id)
}

func (s *ContributionStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM registry_contributions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	return nil
}

func collectContributions(rows *sql.Rows) ([]model.RegistryContribution, error) {
	var contributions []model.RegistryContribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		contributions = append(contributions, *c)
	}
	return contributions, rows.Err()
}
