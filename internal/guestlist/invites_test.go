package guestlist

import (
	"errors"
	"testing"

	"github.com/samandjonah/wedding-api/internal/database"
	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/store"
)

func setupService(t *testing.T) (*Service, *store.GuestStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	guests := store.NewGuestStore(db)
	return NewService(guests, store.NewInviteStore(db)), guests
}

func TestCreateInvite(t *testing.T) {
	svc, guests := setupService(t)

	a, _ := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	b, _ := guests.Create("John Doe", "john@example.com", "Friend", "Sam", false, model.InviteTypeCouple)

	inv, err := svc.CreateInvite([]string{a.ID, b.ID}, model.InviteTypeCouple)
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}
	if len(inv.Guests) != 2 {
		t.Fatalf("expected 2 linked guests, got %d", len(inv.Guests))
	}
	for _, g := range inv.Guests {
		if g.InviteID == nil || *g.InviteID != inv.Invite.ID {
			t.Errorf("guest %s not linked to the new invite", g.Name)
		}
	}
}

func TestCreateInviteGroupSize(t *testing.T) {
	svc, guests := setupService(t)

	a, _ := guests.Create("A One", "a@example.com", "Friend", "Sam", false, model.InviteTypeSingle)
	b, _ := guests.Create("B Two", "b@example.com", "Friend", "Sam", false, model.InviteTypeSingle)
	c, _ := guests.Create("C Three", "c@example.com", "Friend", "Sam", false, model.InviteTypeSingle)

	if _, err := svc.CreateInvite(nil, model.InviteTypeSingle); !errors.Is(err, ErrGroupSize) {
		t.Errorf("empty group: expected ErrGroupSize, got %v", err)
	}
	if _, err := svc.CreateInvite([]string{a.ID, b.ID, c.ID}, model.InviteTypeSingle); !errors.Is(err, ErrGroupSize) {
		t.Errorf("3-guest group: expected ErrGroupSize, got %v", err)
	}
}

func TestCreateInviteStealsLinkedGuest(t *testing.T) {
	svc, guests := setupService(t)

	g, _ := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeSingle)
	first, _ := svc.CreateInvite([]string{g.ID}, model.InviteTypeSingle)

	// Referencing a linked guest moves it rather than failing
	second, err := svc.CreateInvite([]string{g.ID}, model.InviteTypeSingle)
	if err != nil {
		t.Fatalf("create second invite: %v", err)
	}

	got, _ := guests.GetByID(g.ID)
	if got.InviteID == nil || *got.InviteID != second.Invite.ID {
		t.Error("guest should have moved to the second invite")
	}

	remaining, _ := svc.GetInvite(first.Invite.ID)
	if len(remaining.Guests) != 0 {
		t.Errorf("first invite should be empty, has %d guests", len(remaining.Guests))
	}
}

func TestUpdateInviteReplacesGuests(t *testing.T) {
	svc, guests := setupService(t)

	a, _ := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	b, _ := guests.Create("John Doe", "john@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	c, _ := guests.Create("Amy Smith", "amy@example.com", "Friend", "Jonah", false, model.InviteTypeSingle)

	inv, _ := svc.CreateInvite([]string{a.ID, b.ID}, model.InviteTypeCouple)

	updated, err := svc.UpdateInvite(inv.Invite.ID, []string{c.ID}, model.InviteTypeSingle)
	if err != nil {
		t.Fatalf("update invite: %v", err)
	}
	if updated.Invite.InviteType != model.InviteTypeSingle {
		t.Errorf("invite_type = %q, want single", updated.Invite.InviteType)
	}
	if len(updated.Guests) != 1 || updated.Guests[0].ID != c.ID {
		t.Errorf("expected only Amy Smith linked, got %v", updated.Guests)
	}

	// The old guests are fully unlinked, not just superseded
	for _, id := range []string{a.ID, b.ID} {
		g, _ := guests.GetByID(id)
		if g.InviteID != nil {
			t.Errorf("guest %s should be unlinked after replacement", g.Name)
		}
	}
}

func TestUpdateInviteNotFound(t *testing.T) {
	svc, guests := setupService(t)

	g, _ := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeSingle)
	if _, err := svc.UpdateInvite("nope", []string{g.ID}, model.InviteTypeSingle); !errors.Is(err, ErrInviteNotFound) {
		t.Errorf("expected ErrInviteNotFound, got %v", err)
	}
}

func TestDeleteInviteUnlinksGuests(t *testing.T) {
	svc, guests := setupService(t)

	g, _ := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeSingle)
	inv, _ := svc.CreateInvite([]string{g.ID}, model.InviteTypeSingle)

	if err := svc.DeleteInvite(inv.Invite.ID); err != nil {
		t.Fatalf("delete invite: %v", err)
	}

	got, _ := guests.GetByID(g.ID)
	if got == nil {
		t.Fatal("guest should survive invite deletion")
	}
	if got.InviteID != nil {
		t.Error("guest should be unlinked")
	}

	if err := svc.DeleteInvite(inv.Invite.ID); !errors.Is(err, ErrInviteNotFound) {
		t.Errorf("second delete: expected ErrInviteNotFound, got %v", err)
	}
}

func TestListInvitesHidesRemovedGuests(t *testing.T) {
	svc, guests := setupService(t)

	a, _ := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	b, _ := guests.Create("John Doe", "john@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	svc.CreateInvite([]string{a.ID, b.ID}, model.InviteTypeCouple)
	guests.SetRemoved(b.ID, true)

	invites, err := svc.ListInvites()
	if err != nil {
		t.Fatalf("list invites: %v", err)
	}
	if len(invites) != 1 {
		t.Fatalf("expected 1 invite, got %d", len(invites))
	}
	if len(invites[0].Guests) != 1 || invites[0].Guests[0].ID != a.ID {
		t.Errorf("expected only the active guest, got %v", invites[0].Guests)
	}
}

func TestSuggestUsesUnassignedGuestsOnly(t *testing.T) {
	svc, guests := setupService(t)

	guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	guests.Create("John Doe", "john@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	taken, _ := guests.Create("Amy Smith", "amy@example.com", "Friend", "Sam", false, model.InviteTypeSingle)
	svc.CreateInvite([]string{taken.ID}, model.InviteTypeSingle)

	groups, err := svc.Suggest()
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 suggested group, got %d", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Errorf("expected the Does paired, got %v", groups[0])
	}
}
