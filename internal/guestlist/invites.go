// Package guestlist groups guests into invites: manual create/update/delete
// with the 1-2 guest cap, plus the advisory pairing suggestions.
package guestlist

import (
	"errors"

	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/pairing"
	"github.com/samandjonah/wedding-api/internal/store"
)

var (
	ErrGroupSize      = errors.New("an invite must reference 1 or 2 guests")
	ErrInviteNotFound = errors.New("invite not found")
)

type Service struct {
	guests  *store.GuestStore
	invites *store.InviteStore
}

func NewService(guests *store.GuestStore, invites *store.InviteStore) *Service {
	return &Service{guests: guests, invites: invites}
}

// CreateInvite creates an invite with a fresh code and points each referenced
// guest at it. Guests already linked to another invite are silently moved;
// unknown guest ids are no-ops. Both behaviors match the admin UI's
// expectations.
func (s *Service) CreateInvite(guestIDs []string, inviteType string) (*model.InviteWithGuests, error) {
	if len(guestIDs) == 0 || len(guestIDs) > 2 {
		return nil, ErrGroupSize
	}

	inv, err := s.invites.Create(inviteType)
	if err != nil {
		return nil, err
	}

	for _, guestID := range guestIDs {
		if err := s.guests.AssignInvite(guestID, inv.ID); err != nil {
			return nil, err
		}
	}

	return s.withGuests(inv)
}

// UpdateInvite replaces the invite's guest set wholesale: every currently
// linked guest is unlinked, then exactly the new ids are linked.
func (s *Service) UpdateInvite(id string, guestIDs []string, inviteType string) (*model.InviteWithGuests, error) {
	if len(guestIDs) == 0 || len(guestIDs) > 2 {
		return nil, ErrGroupSize
	}

	existing, err := s.invites.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrInviteNotFound
	}

	inv, err := s.invites.UpdateType(id, inviteType)
	if err != nil {
		return nil, err
	}

	if err := s.guests.UnlinkInvite(id); err != nil {
		return nil, err
	}
	for _, guestID := range guestIDs {
		if err := s.guests.AssignInvite(guestID, id); err != nil {
			return nil, err
		}
	}

	return s.withGuests(inv)
}

// DeleteInvite unlinks the invite's guests before removing the row, so the
// guests survive with a null invite reference.
func (s *Service) DeleteInvite(id string) error {
	existing, err := s.invites.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrInviteNotFound
	}

	if err := s.guests.UnlinkInvite(id); err != nil {
		return err
	}
	return s.invites.Delete(id)
}

// GetInvite returns the invite with its guests.
func (s *Service) GetInvite(id string) (*model.InviteWithGuests, error) {
	inv, err := s.invites.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInviteNotFound
	}
	return s.withGuests(inv)
}

// ListInvites returns every invite with its non-removed guests, newest first.
func (s *Service) ListInvites() ([]model.InviteWithGuests, error) {
	invites, err := s.invites.List()
	if err != nil {
		return nil, err
	}

	result := make([]model.InviteWithGuests, 0, len(invites))
	for _, inv := range invites {
		guests, err := s.guests.ListByInvite(inv.ID)
		if err != nil {
			return nil, err
		}
		active := guests[:0:0]
		for _, g := range guests {
			if !g.Removed {
				active = append(active, g)
			}
		}
		result = append(result, model.InviteWithGuests{Invite: inv, Guests: active})
	}
	return result, nil
}

// Suggest runs the pairing heuristic over the unassigned, non-removed guests.
func (s *Service) Suggest() ([][]model.Guest, error) {
	guests, err := s.guests.ListUnassigned()
	if err != nil {
		return nil, err
	}
	return pairing.Suggest(guests), nil
}

func (s *Service) withGuests(inv *model.Invite) (*model.InviteWithGuests, error) {
	guests, err := s.guests.ListByInvite(inv.ID)
	if err != nil {
		return nil, err
	}
	return &model.InviteWithGuests{Invite: *inv, Guests: guests}, nil
}
