package store

import (
	"testing"

	"github.com/samandjonah/wedding-api/internal/database"
	"github.com/samandjonah/wedding-api/internal/model"
)

func setupInviteTestDB(t *testing.T) (*InviteStore, *GuestStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewInviteStore(db), NewGuestStore(db)
}

func TestInviteCreate(t *testing.T) {
	invites, _ := setupInviteTestDB(t)

	inv, err := invites.Create(model.InviteTypeCouple)
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}
	if inv.InviteType != model.InviteTypeCouple {
		t.Errorf("invite_type = %q, want couple", inv.InviteType)
	}
	if len(inv.UniqueCode) != 8 {
		t.Errorf("unique code length = %d, want 8", len(inv.UniqueCode))
	}
}

func TestInviteGetByIDNotFound(t *testing.T) {
	invites, _ := setupInviteTestDB(t)

	inv, err := invites.GetByID("nope")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if inv != nil {
		t.Error("expected nil for nonexistent id")
	}
}

func TestInviteDeleteClearsGuestLink(t *testing.T) {
	invites, guests := setupInviteTestDB(t)

	inv, _ := invites.Create(model.InviteTypeSingle)
	g, _ := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeSingle)
	guests.AssignInvite(g.ID, inv.ID)

	if err := invites.Delete(inv.ID); err != nil {
		t.Fatalf("delete invite: %v", err)
	}

	// invite_id references invites with ON DELETE SET NULL
	got, _ := guests.GetByID(g.ID)
	if got.InviteID != nil {
		t.Error("guest should be unlinked after invite deletion")
	}
}

func TestInviteListWithActiveGuests(t *testing.T) {
	invites, guests := setupInviteTestDB(t)

	full, _ := invites.Create(model.InviteTypeCouple)
	invites.Create(model.InviteTypeSingle) // no guests
	ghosted, _ := invites.Create(model.InviteTypeSingle)

	a, _ := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	b, _ := guests.Create("John Doe", "john@example.com", "Friend", "Sam", false, model.InviteTypeCouple)
	c, _ := guests.Create("Gone Guest", "gone@example.com", "Friend", "Sam", false, model.InviteTypeSingle)
	guests.AssignInvite(a.ID, full.ID)
	guests.AssignInvite(b.ID, full.ID)
	guests.AssignInvite(c.ID, ghosted.ID)
	guests.SetRemoved(c.ID, true)

	result, err := invites.ListWithActiveGuests()
	if err != nil {
		t.Fatalf("list with active guests: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 invite with active guests, got %d", len(result))
	}
	if result[0].Invite.ID != full.ID {
		t.Errorf("invite = %s, want %s", result[0].Invite.ID, full.ID)
	}
	if len(result[0].Guests) != 2 {
		t.Errorf("expected 2 guests, got %d", len(result[0].Guests))
	}

	count, err := invites.CountWithActiveGuests()
	if err != nil {
		t.Fatalf("count with active guests: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestInviteFirst(t *testing.T) {
	invites, _ := setupInviteTestDB(t)

	first, err := invites.First()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first != nil {
		t.Error("expected nil with no invites")
	}

	invites.Create(model.InviteTypeSingle)

	first, err = invites.First()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first == nil {
		t.Error("expected an invite")
	}
}
