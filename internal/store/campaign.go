package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/samandjonah/wedding-api/internal/model"
)

// CampaignStore persists email campaigns and their per-invite send records.
type CampaignStore struct {
	db *sql.DB
}

func NewCampaignStore(db *sql.DB) *CampaignStore {
	return &CampaignStore{db: db}
}

const campaignCols = `id, name, subject, template_type, sent_count, created_at, sent_at`

func scanCampaign(scanner interface{ Scan(...any) error }) (*model.EmailCampaign, error) {
	var c model.EmailCampaign
	var sentAt sql.NullTime
	err := scanner.Scan(&c.ID, &c.Name, &c.Subject, &c.TemplateType, &c.SentCount, &c.CreatedAt, &sentAt)
	if err != nil {
		return nil, err
	}
	if sentAt.Valid {
		c.SentAt = &sentAt.Time
	}
	return &c, nil
}

func (s *CampaignStore) Create(name, subject, templateType string) (*model.EmailCampaign, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO email_campaigns (id, name, subject, template_type) VALUES (?, ?, ?, ?)`,
		id, name, subject, templateType,
	)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}
	return s.GetByID(id)
}

func (s *CampaignStore) GetByID(id string) (*model.EmailCampaign, error) {
	row := s.db.QueryRow(`SELECT `+campaignCols+` FROM email_campaigns WHERE id = ?`, id)
	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (s *CampaignStore) List() ([]model.EmailCampaign, error) {
	rows, err := s.db.Query(`SELECT ` + campaignCols + ` FROM email_campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.EmailCampaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// MarkSent stamps the campaign with its dispatch result.
func (s *CampaignStore) MarkSent(id string, sentCount int) error {
	_, err := s.db.Exec(
		`UPDATE email_campaigns SET sent_count = ?, sent_at = CURRENT_TIMESTAMP WHERE id = ?`,
		sentCount, id,
	)
	if err != nil {
		return fmt.Errorf("mark campaign sent: %w", err)
	}
	return nil
}

// --- Send records ---

const sendCols = `id, campaign_id, invite_id, sent_at, opened_at, opened_count`

func scanSend(scanner interface{ Scan(...any) error }) (*model.EmailSend, error) {
	var e model.EmailSend
	var campaignID, inviteID sql.NullString
	var openedAt sql.NullTime
	err := scanner.Scan(&e.ID, &campaignID, &inviteID, &e.SentAt, &openedAt, &e.OpenedCount)
	if err != nil {
		return nil, err
	}
	if campaignID.Valid {
		e.CampaignID = &campaignID.String
	}
	if inviteID.Valid {
		e.InviteID = &inviteID.String
	}
	if openedAt.Valid {
		e.OpenedAt = &openedAt.Time
	}
	return &e, nil
}

func (s *CampaignStore) CreateSend(campaignID, inviteID string) (*model.EmailSend, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO email_sends (id, campaign_id, invite_id) VALUES (?, ?, ?)`,
		id, campaignID, inviteID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert email send: %w", err)
	}
	return s.GetSendByID(id)
}

func (s *CampaignStore) GetSendByID(id string) (*model.EmailSend, error) {
	row := s.db.QueryRow(`SELECT `+sendCols+` FROM email_sends WHERE id = ?`, id)
	e, err := scanSend(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get email send: %w", err)
	}
	return e, nil
}

func (s *CampaignStore) ListSendsByCampaign(campaignID string) ([]model.EmailSend, error) {
	rows, err := s.db.Query(
		`SELECT `+sendCols+` FROM email_sends WHERE campaign_id = ? ORDER BY sent_at DESC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list email sends: %w", err)
	}
	defer rows.Close()

	var sends []model.EmailSend
	for rows.Next() {
		e, err := scanSend(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email send: %w", err)
		}
		sends = append(sends, *e)
	}
	return sends, rows.Err()
}

func (s *CampaignStore) CountSendsByCampaign(campaignID string) (int64, error) {
	var count int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM email_sends WHERE campaign_id = ?`, campaignID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count email sends: %w", err)
	}
	return count, nil
}

// CountOpenedByCampaign counts sends opened at least once.
func (s *CampaignStore) CountOpenedByCampaign(campaignID string) (int64, error) {
	var count int64
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM email_sends WHERE campaign_id = ? AND opened_at IS NOT NULL`,
		campaignID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count opened sends: %w", err)
	}
	return count, nil
}

// RecordOpen notes a tracking-pixel hit. The first open sets opened_at; every
// open increments opened_count. Unknown ids are a no-op.
func (s *CampaignStore) RecordOpen(sendID string) error {
	_, err := s.db.Exec(
		`UPDATE email_sends
		 SET opened_count = opened_count + 1,
		     opened_at = COALESCE(opened_at, CURRENT_TIMESTAMP)
		 WHERE id = ?`,
		sendID,
	)
	if err != nil {
		return fmt.Errorf("record open: %w", err)
	}
	return nil
}
