package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/store"
	"github.com/samandjonah/wedding-api/internal/websocket"
)

type GuestHandler struct {
	store *store.GuestStore
	hub   *websocket.Hub
}

func NewGuestHandler(s *store.GuestStore, hub *websocket.Hub) *GuestHandler {
	return &GuestHandler{store: s, hub: hub}
}

type guestRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
	SamOrJonah   string `json:"sam_or_jonah"`
	Maybe        bool   `json:"maybe"`
	InviteType   string `json:"invite_type"`
}

func validInviteType(t string) bool {
	switch t {
	case model.InviteTypeSingle, model.InviteTypePlusOne, model.InviteTypeCouple:
		return true
	}
	return false
}

func (h *GuestHandler) List(w http.ResponseWriter, r *http.Request) {
	guests, err := h.store.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list guests"})
		return
	}
	if guests == nil {
		guests = []model.Guest{}
	}
	writeJSON(w, http.StatusOK, guests)
}

func (h *GuestHandler) Get(w http.ResponseWriter, r *http.Request) {
	guest, err := h.store.GetByID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get guest"})
		return
	}
	if guest == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "guest not found"})
		return
	}
	writeJSON(w, http.StatusOK, guest)
}

func (h *GuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req guestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.InviteType == "" {
		req.InviteType = model.InviteTypeSingle
	}
	if !validInviteType(req.InviteType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid invite_type"})
		return
	}

	guest, err := h.store.Create(req.Name, req.Email, req.Relationship, req.SamOrJonah, req.Maybe, req.InviteType)
	if err != nil {
		log.Printf("failed to create guest: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create guest"})
		return
	}

	h.hub.Broadcast(websocket.NewEvent("guest", "created", guest.ID, nil))
	writeJSON(w, http.StatusCreated, guest)
}

func (h *GuestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.store.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get guest"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "guest not found"})
		return
	}

	var req guestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.InviteType == "" {
		req.InviteType = existing.InviteType
	}
	if !validInviteType(req.InviteType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid invite_type"})
		return
	}

	guest, err := h.store.Update(id, req.Name, req.Email, req.Relationship, req.SamOrJonah, req.Maybe, req.InviteType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update guest"})
		return
	}

	h.hub.Broadcast(websocket.NewEvent("guest", "updated", id, nil))
	writeJSON(w, http.StatusOK, guest)
}

func (h *GuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete guest"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("guest", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SetRemoved soft-removes a guest from the active list, or restores one.
// Removed guests keep their invite link but stop counting anywhere.
func (h *GuestHandler) SetRemoved(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Removed bool `json:"removed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	guest, err := h.store.SetRemoved(id, req.Removed)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update guest"})
		return
	}
	if guest == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "guest not found"})
		return
	}

	h.hub.Broadcast(websocket.NewEvent("guest", "updated", id, map[string]any{"removed": req.Removed}))
	writeJSON(w, http.StatusOK, guest)
}

type importResponse struct {
	Success       bool     `json:"success"`
	ImportedCount int      `json:"imported_count"`
	Errors        []string `json:"errors"`
}

// ImportCSV bulk-creates guests from a CSV body with columns
// Name, Relationship, Sam/Jonah, Maybe. Rows that fail are reported
// individually without aborting the rest of the import.
func (h *GuestHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	reader := csv.NewReader(r.Body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid CSV"})
		return
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Name", "Relationship", "Sam/Jonah", "Maybe"} {
		if _, ok := col[required]; !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing column: " + required})
			return
		}
	}

	resp := importResponse{Errors: []string{}}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Row %d: %v", row, err))
			continue
		}

		field := func(name string) string {
			if i := col[name]; i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		name := field("Name")
		if name == "" {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Row %d: name is required", row))
			continue
		}

		relationship := field("Relationship")
		maybe := strings.EqualFold(field("Maybe"), "yes")

		inviteType := model.InviteTypeSingle
		if relationship == "+1" {
			inviteType = model.InviteTypePlusOne
		}

		// Placeholder email keeps the unique constraint happy until the
		// real address is filled in by hand.
		email := strings.ReplaceAll(strings.ToLower(name), " ", "_") + "_" + store.NewGuestCode()

		if _, err := h.store.Create(name, email, relationship, field("Sam/Jonah"), maybe, inviteType); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Row %d: %v", row, err))
			continue
		}
		resp.ImportedCount++
	}

	resp.Success = len(resp.Errors) == 0
	if resp.ImportedCount > 0 {
		h.hub.Broadcast(websocket.NewEvent("guest", "imported", "", map[string]any{"count": resp.ImportedCount}))
	}
	writeJSON(w, http.StatusOK, resp)
}
