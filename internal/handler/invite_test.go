package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samandjonah/wedding-api/internal/database"
	"github.com/samandjonah/wedding-api/internal/guestlist"
	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/store"
	"github.com/samandjonah/wedding-api/internal/websocket"
)

func setupInviteHandler(t *testing.T) (*InviteHandler, *store.GuestStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	guests := store.NewGuestStore(db)
	invites := store.NewInviteStore(db)
	svc := guestlist.NewService(guests, invites)
	hub := websocket.NewHub(slog.Default())
	return NewInviteHandler(svc, hub), guests
}

func TestAutoSuggestReturnsBareArray(t *testing.T) {
	h, guests := setupInviteHandler(t)

	if _, err := guests.Create("Jane Doe", "jane@example.com", "Friend", "Sam", false, model.InviteTypeCouple); err != nil {
		t.Fatalf("create guest: %v", err)
	}
	if _, err := guests.Create("John Doe", "john@example.com", "Friend", "Sam", false, model.InviteTypeCouple); err != nil {
		t.Fatalf("create guest: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/admin/invites/auto-suggest", nil)
	rec := httptest.NewRecorder()
	h.AutoSuggest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Top-level JSON array, not an object wrapping one
	var groups [][]model.Guest
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("body is not a bare array: %v (body %q)", err, rec.Body.String())
	}
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("groups = %v, want one couple", groups)
	}
}

func TestAutoSuggestEmptyGuestList(t *testing.T) {
	h, _ := setupInviteHandler(t)

	req := httptest.NewRequest("POST", "/api/admin/invites/auto-suggest", nil)
	rec := httptest.NewRecorder()
	h.AutoSuggest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty array", body)
	}
}
