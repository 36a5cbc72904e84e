package model

import "time"

const (
	TemplateSaveTheDate = "save_the_date"
	TemplateInvitation  = "invitation"
)

type EmailCampaign struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Subject      string     `json:"subject"`
	TemplateType string     `json:"template_type"`
	SentCount    int        `json:"sent_count"`
	CreatedAt    time.Time  `json:"created_at"`
	SentAt       *time.Time `json:"sent_at"`
}

// EmailSend records one dispatched email per (campaign, invite) pair and its
// open-tracking state.
type EmailSend struct {
	ID          string     `json:"id"`
	CampaignID  *string    `json:"campaign_id"`
	InviteID    *string    `json:"invite_id"`
	SentAt      time.Time  `json:"sent_at"`
	OpenedAt    *time.Time `json:"opened_at"`
	OpenedCount int        `json:"opened_count"`
}
