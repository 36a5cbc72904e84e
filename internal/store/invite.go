package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/samandjonah/wedding-api/internal/model"
)

type InviteStore struct {
	db *sql.DB
}

func NewInviteStore(db *sql.DB) *InviteStore {
	return &InviteStore{db: db}
}

const inviteCols = `id, unique_code, invite_type, created_at, updated_at`

func scanInvite(scanner interface{ Scan(...any) error }) (*model.Invite, error) {
	var inv model.Invite
	err := scanner.Scan(&inv.ID, &inv.UniqueCode, &inv.InviteType, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// NewInviteCode returns a random 8-hex-digit invite code. The code space is
// large relative to the guest list, so collisions are left to the unique
// constraint.
func NewInviteCode() string {
	b := make([]byte, 4)
	// crypto/rand.Read never returns an error; it fills b or crashes the
	// process.
	rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *InviteStore) Create(inviteType string) (*model.Invite, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO invites (id, unique_code, invite_type) VALUES (?, ?, ?)`,
		id, NewInviteCode(), inviteType,
	)
	if err != nil {
		return nil, fmt.Errorf("insert invite: %w", err)
	}
	return s.GetByID(id)
}

func (s *InviteStore) GetByID(id string) (*model.Invite, error) {
	row := s.db.QueryRow(`SELECT `+inviteCols+` FROM invites WHERE id = ?`, id)
	inv, err := scanInvite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

func (s *InviteStore) List() ([]model.Invite, error) {
	rows, err := s.db.Query(`SELECT ` + inviteCols + ` FROM invites ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()

	var invites []model.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		invites = append(invites, *inv)
	}
	return invites, rows.Err()
}

// First returns the oldest invite, or nil when none exist. Used to pick a
// sample for campaign previews.
func (s *InviteStore) First() (*model.Invite, error) {
	row := s.db.QueryRow(`SELECT ` + inviteCols + ` FROM invites ORDER BY created_at ASC LIMIT 1`)
	inv, err := scanInvite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first invite: %w", err)
	}
	return inv, nil
}

func (s *InviteStore) UpdateType(id, inviteType string) (*model.Invite, error) {
	_, err := s.db.Exec(
		`UPDATE invites SET invite_type = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		inviteType, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update invite: %w", err)
	}
	return s.GetByID(id)
}

func (s *InviteStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM invites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

// ListWithActiveGuests returns invites that still have at least one
// non-removed guest, each with those guests attached. This is the campaign
// recipient set.
func (s *InviteStore) ListWithActiveGuests() ([]model.InviteWithGuests, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT i.id, i.unique_code, i.invite_type, i.created_at, i.updated_at
		 FROM invites i
		 INNER JOIN guests g ON g.invite_id = i.id
		 WHERE g.removed = 0
		 ORDER BY i.created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list invites with guests: %w", err)
	}
	defer rows.Close()

	var invites []model.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		invites = append(invites, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]model.InviteWithGuests, 0, len(invites))
	for _, inv := range invites {
		guests, err := s.activeGuests(inv.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, model.InviteWithGuests{Invite: inv, Guests: guests})
	}
	return result, nil
}

// CountWithActiveGuests counts invites that would receive a campaign.
func (s *InviteStore) CountWithActiveGuests() (int64, error) {
	var count int64
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT invite_id) FROM guests WHERE removed = 0 AND invite_id IS NOT NULL`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invites with guests: %w", err)
	}
	return count, nil
}

func (s *InviteStore) activeGuests(inviteID string) ([]model.Guest, error) {
	rows, err := s.db.Query(
		`SELECT `+guestCols+` FROM guests WHERE invite_id = ? AND removed = 0 ORDER BY name ASC`,
		inviteID,
	)
	if err != nil {
		return nil, fmt.Errorf("list active guests: %w", err)
	}
	defer rows.Close()
	return collectGuests(rows)
}
