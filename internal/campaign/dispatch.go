// Package campaign dispatches save-the-date and invitation email campaigns
// to every invite that still has active guests.
package campaign

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/samandjonah/wedding-api/internal/email"
	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/store"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// Dispatcher sends a campaign once: one email per invite, one send record per
// email, fire-and-forget toward the provider.
type Dispatcher struct {
	campaigns *store.CampaignStore
	invites   *store.InviteStore
	client    *email.Client
	baseURL   string
	vars      email.TemplateVars
	logger    *slog.Logger
}

func NewDispatcher(campaigns *store.CampaignStore, invites *store.InviteStore, client *email.Client, baseURL string, vars email.TemplateVars, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		campaigns: campaigns,
		invites:   invites,
		client:    client,
		baseURL:   baseURL,
		vars:      vars,
		logger:    logger,
	}
}

// Send dispatches the campaign to every invite with at least one non-removed
// guest. Each delivery records an email_send row first so the tracking pixel
// URL is stable before the provider sees the message. A provider failure
// aborts the run; the campaign keeps the count sent so far.
func (d *Dispatcher) Send(campaignID string) (int, error) {
	c, err := d.campaigns.GetByID(campaignID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, ErrCampaignNotFound
	}

	recipients, err := d.invites.ListWithActiveGuests()
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, invite := range recipients {
		if err := d.sendOne(c, invite); err != nil {
			// Record partial progress before surfacing the failure.
			if markErr := d.campaigns.MarkSent(campaignID, sent); markErr != nil {
				d.logger.Error("mark campaign after failure", "campaign_id", campaignID, "error", markErr)
			}
			return sent, fmt.Errorf("send to invite %s: %w", invite.Invite.UniqueCode, err)
		}
		sent++
	}

	if err := d.campaigns.MarkSent(campaignID, sent); err != nil {
		return sent, err
	}

	d.logger.Info("campaign dispatched", "campaign_id", campaignID, "sent", sent)
	return sent, nil
}

func (d *Dispatcher) sendOne(c *model.EmailCampaign, invite model.InviteWithGuests) error {
	send, err := d.campaigns.CreateSend(c.ID, invite.Invite.ID)
	if err != nil {
		return err
	}

	vars := d.vars
	vars.PixelURL = fmt.Sprintf("%s/api/track/%s/open.png", d.baseURL, send.ID)
	for _, g := range invite.Guests {
		vars.GuestNames = append(vars.GuestNames, g.Name)
	}

	html := d.render(c.TemplateType, vars)

	var to []string
	for _, g := range invite.Guests {
		if g.Email != "" {
			to = append(to, g.Email)
		}
	}
	if len(to) == 0 {
		d.logger.Warn("invite has no usable addresses", "invite_code", invite.Invite.UniqueCode)
		return nil
	}

	return d.client.Send(to, c.Subject, html)
}

// Preview renders the campaign template against the oldest invite, or a
// placeholder page when no invites exist yet.
func (d *Dispatcher) Preview(campaignID string) (string, error) {
	c, err := d.campaigns.GetByID(campaignID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", ErrCampaignNotFound
	}

	sample, err := d.invites.First()
	if err != nil {
		return "", err
	}
	if sample == nil {
		return "<html><body><h1>No invites found</h1><p>Create some invites first to preview the email template.</p></body></html>", nil
	}

	full, err := d.invites.ListWithActiveGuests()
	if err != nil {
		return "", err
	}

	vars := d.vars
	for _, inv := range full {
		if inv.Invite.ID == sample.ID {
			for _, g := range inv.Guests {
				vars.GuestNames = append(vars.GuestNames, g.Name)
			}
			break
		}
	}
	return d.render(c.TemplateType, vars), nil
}

func (d *Dispatcher) render(templateType string, vars email.TemplateVars) string {
	if templateType == model.TemplateInvitation {
		return email.RenderInvitation(vars)
	}
	return email.RenderSaveTheDate(vars)
}
