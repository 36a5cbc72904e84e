package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/samandjonah/wedding-api/internal/guestlist"
	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/websocket"
)

type InviteHandler struct {
	svc *guestlist.Service
	hub *websocket.Hub
}

func NewInviteHandler(svc *guestlist.Service, hub *websocket.Hub) *InviteHandler {
	return &InviteHandler{svc: svc, hub: hub}
}

type inviteRequest struct {
	GuestIDs   []string `json:"guest_ids"`
	InviteType string   `json:"invite_type"`
}

func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	invites, err := h.svc.ListInvites()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list invites"})
		return
	}
	if invites == nil {
		invites = []model.InviteWithGuests{}
	}
	writeJSON(w, http.StatusOK, invites)
}

func (h *InviteHandler) Get(w http.ResponseWriter, r *http.Request) {
	invite, err := h.svc.GetInvite(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, guestlist.ErrInviteNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "invite not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get invite"})
		return
	}
	writeJSON(w, http.StatusOK, invite)
}

func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.InviteType == "" {
		req.InviteType = model.InviteTypeSingle
	}

	invite, err := h.svc.CreateInvite(req.GuestIDs, req.InviteType)
	if err != nil {
		if errors.Is(err, guestlist.ErrGroupSize) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("failed to create invite: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create invite"})
		return
	}

	h.hub.Broadcast(websocket.NewEvent("invite", "created", invite.Invite.ID, nil))
	writeJSON(w, http.StatusCreated, invite)
}

func (h *InviteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	invite, err := h.svc.UpdateInvite(id, req.GuestIDs, req.InviteType)
	if err != nil {
		switch {
		case errors.Is(err, guestlist.ErrInviteNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "invite not found"})
		case errors.Is(err, guestlist.ErrGroupSize):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update invite"})
		}
		return
	}

	h.hub.Broadcast(websocket.NewEvent("invite", "updated", id, nil))
	writeJSON(w, http.StatusOK, invite)
}

func (h *InviteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.DeleteInvite(id); err != nil {
		if errors.Is(err, guestlist.ErrInviteNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "invite not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete invite"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("invite", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AutoSuggest proposes invite groupings for guests not yet on an invite.
// Nothing is persisted; the admin reviews and creates invites explicitly.
func (h *InviteHandler) AutoSuggest(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.Suggest()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to suggest invites"})
		return
	}
	if groups == nil {
		groups = [][]model.Guest{}
	}
	writeJSON(w, http.StatusOK, groups)
}
