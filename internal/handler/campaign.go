package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/samandjonah/wedding-api/internal/campaign"
	"github.com/samandjonah/wedding-api/internal/guestlist"
	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/store"
	"github.com/samandjonah/wedding-api/internal/websocket"
)

type CampaignHandler struct {
	store      *store.CampaignStore
	invites    *store.InviteStore
	guests     *guestlist.Service
	dispatcher *campaign.Dispatcher
	hub        *websocket.Hub
}

func NewCampaignHandler(s *store.CampaignStore, invites *store.InviteStore, guests *guestlist.Service, d *campaign.Dispatcher, hub *websocket.Hub) *CampaignHandler {
	return &CampaignHandler{store: s, invites: invites, guests: guests, dispatcher: d, hub: hub}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.store.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list campaigns"})
		return
	}
	if campaigns == nil {
		campaigns = []model.EmailCampaign{}
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Subject      string `json:"subject"`
		TemplateType string `json:"template_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Subject == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and subject are required"})
		return
	}
	if req.TemplateType != model.TemplateSaveTheDate && req.TemplateType != model.TemplateInvitation {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid template_type"})
		return
	}

	c, err := h.store.Create(req.Name, req.Subject, req.TemplateType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create campaign"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("campaign", "created", c.ID, nil))
	writeJSON(w, http.StatusCreated, c)
}

// Preview renders the campaign template as HTML against a sample invite.
func (h *CampaignHandler) Preview(w http.ResponseWriter, r *http.Request) {
	html, err := h.dispatcher.Preview(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "campaign not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to render preview"})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

type sendCampaignResponse struct {
	Success   bool   `json:"success"`
	SentCount int    `json:"sent_count"`
	Message   string `json:"message"`
}

func (h *CampaignHandler) Send(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sent, err := h.dispatcher.Send(id)
	if err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "campaign not found"})
			return
		}
		log.Printf("failed to send campaign %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, sendCampaignResponse{
			Success:   false,
			SentCount: sent,
			Message:   "campaign aborted partway through",
		})
		return
	}

	h.hub.Broadcast(websocket.NewEvent("campaign", "sent", id, map[string]any{"sent_count": sent}))
	writeJSON(w, http.StatusOK, sendCampaignResponse{
		Success:   true,
		SentCount: sent,
		Message:   "campaign sent",
	})
}

type campaignStats struct {
	TotalInvites   int64 `json:"total_invites"`
	SentCount      int64 `json:"sent_count"`
	OpenedCount    int64 `json:"opened_count"`
	NotOpenedCount int64 `json:"not_opened_count"`
	PendingCount   int64 `json:"pending_count"`
}

func (h *CampaignHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	c, err := h.store.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get campaign"})
		return
	}
	if c == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "campaign not found"})
		return
	}

	totalInvites, err := h.invites.CountWithActiveGuests()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute stats"})
		return
	}
	sentCount, err := h.store.CountSendsByCampaign(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute stats"})
		return
	}
	openedCount, err := h.store.CountOpenedByCampaign(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute stats"})
		return
	}

	writeJSON(w, http.StatusOK, campaignStats{
		TotalInvites:   totalInvites,
		SentCount:      sentCount,
		OpenedCount:    openedCount,
		NotOpenedCount: sentCount - openedCount,
		PendingCount:   totalInvites - sentCount,
	})
}

type recipientStatus struct {
	Invite      model.InviteWithGuests `json:"invite"`
	SentAt      time.Time              `json:"sent_at"`
	OpenedAt    *time.Time             `json:"opened_at"`
	OpenedCount int                    `json:"opened_count"`
}

// Recipients lists every send of the campaign with its invite and open state.
func (h *CampaignHandler) Recipients(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sends, err := h.store.ListSendsByCampaign(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recipients"})
		return
	}

	recipients := make([]recipientStatus, 0, len(sends))
	for _, send := range sends {
		if send.InviteID == nil {
			continue
		}
		invite, err := h.guests.GetInvite(*send.InviteID)
		if err != nil {
			// invite was deleted after the send; skip it
			if errors.Is(err, guestlist.ErrInviteNotFound) {
				continue
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recipients"})
			return
		}
		recipients = append(recipients, recipientStatus{
			Invite:      *invite,
			SentAt:      send.SentAt,
			OpenedAt:    send.OpenedAt,
			OpenedCount: send.OpenedCount,
		})
	}

	writeJSON(w, http.StatusOK, recipients)
}
