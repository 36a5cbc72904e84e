package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/samandjonah/wedding-api/internal/registry"
	"github.com/samandjonah/wedding-api/internal/store"
	"github.com/samandjonah/wedding-api/internal/websocket"
)

// trackingPixel is a 1x1 transparent PNG.
var trackingPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

// PublicHandler serves the guest-facing registry endpoints and the email
// open-tracking pixel. None of these require authentication.
type PublicHandler struct {
	svc       *registry.Service
	campaigns *store.CampaignStore
	hub       *websocket.Hub
}

func NewPublicHandler(svc *registry.Service, campaigns *store.CampaignStore, hub *websocket.Hub) *PublicHandler {
	return &PublicHandler{svc: svc, campaigns: campaigns, hub: hub}
}

// Catalog returns every category with its items, including the synthetic
// bucket for uncategorized items.
func (h *PublicHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.Catalog()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load registry"})
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

// GetItem returns one item with its public contribution feed. Contributor
// emails and rejected contributions never appear here.
func (h *PublicHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.ItemWithContributions(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, registry.ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type contributionRequest struct {
	ItemID           *string `json:"item_id"`
	ContributorName  string  `json:"contributor_name"`
	ContributorEmail string  `json:"contributor_email"`
	AmountCents      int64   `json:"amount_cents"`
	IsAnonymous      bool    `json:"is_anonymous"`
	Message          string  `json:"message"`
	Purpose          string  `json:"purpose"`
}

// CreateContribution records a gift from the public site. The contribution
// starts pending and immediately counts toward the item's displayed total.
func (h *PublicHandler) CreateContribution(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.ContributorName = strings.TrimSpace(req.ContributorName)

	contribution, err := h.svc.CreateContribution(
		req.ItemID, req.ContributorName, req.ContributorEmail,
		req.AmountCents, req.IsAnonymous, req.Message, req.Purpose)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrItemNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		case errors.Is(err, registry.ErrAlreadyFunded):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "item is already fully funded"})
		case errors.Is(err, registry.ErrInvalidAmount):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount_cents must be positive"})
		default:
			log.Printf("failed to create contribution: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create contribution"})
		}
		return
	}

	var itemID string
	if contribution.ItemID != nil {
		itemID = *contribution.ItemID
	}
	h.hub.Broadcast(websocket.NewEvent("contribution", "created", contribution.ID,
		map[string]any{"item_id": itemID, "amount_cents": contribution.AmountCents}))
	writeJSON(w, http.StatusCreated, contribution)
}

// TrackOpen serves the email tracking pixel and records the open. It always
// returns the pixel with 200, even for unknown send IDs, so a broken or stale
// link never renders as a missing image in someone's inbox.
func (h *PublicHandler) TrackOpen(w http.ResponseWriter, r *http.Request) {
	sendID := r.PathValue("send_id")
	if err := h.campaigns.RecordOpen(sendID); err != nil {
		log.Printf("failed to record open for send %s: %v", sendID, err)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(trackingPixel)
}
