package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/samandjonah/wedding-api/internal/model"
)

type GuestStore struct {
	db *sql.DB
}

func NewGuestStore(db *sql.DB) *GuestStore {
	return &GuestStore{db: db}
}

const guestCols = `id, name, email, relationship, sam_or_jonah, maybe, unique_code, invite_type, removed, invite_id, created_at, updated_at`

func scanGuest(scanner interface{ Scan(...any) error }) (*model.Guest, error) {
	var g model.Guest
	var maybe, removed int
	var inviteID sql.NullString

	err := scanner.Scan(
		&g.ID, &g.Name, &g.Email, &g.Relationship, &g.SamOrJonah, &maybe,
		&g.UniqueCode, &g.InviteType, &removed, &inviteID, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.Maybe = maybe != 0
	g.Removed = removed != 0
	if inviteID.Valid {
		g.InviteID = &inviteID.String
	}
	return &g, nil
}

// NewGuestCode returns a fresh 8-hex-digit guest code. Uniqueness is enforced
// by the unique_code column, not checked up front.
func NewGuestCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func (s *GuestStore) Create(name, email, relationship, samOrJonah string, maybe bool, inviteType string) (*model.Guest, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO guests (id, name, email, relationship, sam_or_jonah, maybe, unique_code, invite_type) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, email, relationship, samOrJonah, boolToInt(maybe), NewGuestCode(), inviteType,
	)
	if err != nil {
		return nil, fmt.Errorf("insert guest: %w", err)
	}
	return s.GetByID(id)
}

func (s *GuestStore) GetByID(id string) (*model.Guest, error) {
	row := s.db.QueryRow(`SELECT `+guestCols+` FROM guests WHERE id = ?`, id)
	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return g, nil
}

func (s *GuestStore) List() ([]model.Guest, error) {
	rows, err := s.db.Query(`SELECT ` + guestCols + ` FROM guests ORDER BY created_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()
	return collectGuests(rows)
}

// ListUnassigned returns guests eligible for invite pairing: no invite and
// not soft-removed, in stable name order.
func (s *GuestStore) ListUnassigned() ([]model.Guest, error) {
	rows, err := s.db.Query(`SELECT ` + guestCols + ` FROM guests WHERE invite_id IS NULL AND removed = 0 ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list unassigned guests: %w", err)
	}
	defer rows.Close()
	return collectGuests(rows)
}

// ListByInvite returns every guest pointing at the invite, removed or not.
func (s *GuestStore) ListByInvite(inviteID string) ([]model.Guest, error) {
	rows, err := s.db.Query(`SELECT `+guestCols+` FROM guests WHERE invite_id = ? ORDER BY name ASC`, inviteID)
	if err != nil {
		return nil, fmt.Errorf("list guests by invite: %w", err)
	}
	defer rows.Close()
	return collectGuests(rows)
}

func (s *GuestStore) Update(id, name, email, relationship, samOrJonah string, maybe bool, inviteType string) (*model.Guest, error) {
	_, err := s.db.Exec(
		`UPDATE guests SET name = ?, email = ?, relationship = ?, sam_or_jonah = ?, maybe = ?, invite_type = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, email, relationship, samOrJonah, boolToInt(maybe), inviteType, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return s.GetByID(id)
}

func (s *GuestStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

// SetRemoved toggles the soft-delete flag. Removed guests drop out of pairing
// and campaign recipient lists but keep their row.
func (s *GuestStore) SetRemoved(id string, removed bool) (*model.Guest, error) {
	_, err := s.db.Exec(
		`UPDATE guests SET removed = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		boolToInt(removed), id,
	)
	if err != nil {
		return nil, fmt.Errorf("set removed: %w", err)
	}
	return s.GetByID(id)
}

// AssignInvite points the guest at an invite. Passing a guest already linked
// elsewhere silently moves it; the admin UI owns that policy.
func (s *GuestStore) AssignInvite(guestID, inviteID string) error {
	_, err := s.db.Exec(
		`UPDATE guests SET invite_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		inviteID, guestID,
	)
	if err != nil {
		return fmt.Errorf("assign invite: %w", err)
	}
	return nil
}

// UnlinkInvite clears invite_id on every guest of the invite.
func (s *GuestStore) UnlinkInvite(inviteID string) error {
	_, err := s.db.Exec(
		`UPDATE guests SET invite_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE invite_id = ?`,
		inviteID,
	)
	if err != nil {
		return fmt.Errorf("unlink invite: %w", err)
	}
	return nil
}

func collectGuests(rows *sql.Rows) ([]model.Guest, error) {
	var guests []model.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
