package store

import (
	"testing"

	"github.com/samandjonah/wedding-api/internal/database"
	"github.com/samandjonah/wedding-api/internal/model"
)

func setupCampaignTestDB(t *testing.T) (*CampaignStore, *InviteStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCampaignStore(db), NewInviteStore(db)
}

func TestCampaignCreate(t *testing.T) {
	campaigns, _ := setupCampaignTestDB(t)

	c, err := campaigns.Create("Save the dates", "Save our date!", model.TemplateSaveTheDate)
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if c.SentCount != 0 {
		t.Errorf("sent_count = %d, want 0", c.SentCount)
	}
	if c.SentAt != nil {
		t.Error("new campaign should not have sent_at")
	}
}

func TestCampaignMarkSent(t *testing.T) {
	campaigns, _ := setupCampaignTestDB(t)

	c, _ := campaigns.Create("Save the dates", "Save our date!", model.TemplateSaveTheDate)
	if err := campaigns.MarkSent(c.ID, 12); err != nil {
		t.Fatalf("mark sent: %v", err)
	}

	got, _ := campaigns.GetByID(c.ID)
	if got.SentCount != 12 {
		t.Errorf("sent_count = %d, want 12", got.SentCount)
	}
	if got.SentAt == nil {
		t.Error("expected sent_at to be set")
	}
}

func TestCreateSendAndCounts(t *testing.T) {
	campaigns, invites := setupCampaignTestDB(t)

	c, _ := campaigns.Create("Invitations", "You're invited", model.TemplateInvitation)
	inv1, _ := invites.Create(model.InviteTypeSingle)
	inv2, _ := invites.Create(model.InviteTypeSingle)

	s1, err := campaigns.CreateSend(c.ID, inv1.ID)
	if err != nil {
		t.Fatalf("create send: %v", err)
	}
	if s1.OpenedAt != nil || s1.OpenedCount != 0 {
		t.Error("new send should have no opens")
	}
	campaigns.CreateSend(c.ID, inv2.ID)

	count, _ := campaigns.CountSendsByCampaign(c.ID)
	if count != 2 {
		t.Errorf("sends = %d, want 2", count)
	}
	opened, _ := campaigns.CountOpenedByCampaign(c.ID)
	if opened != 0 {
		t.Errorf("opened = %d, want 0", opened)
	}
}

func TestRecordOpen(t *testing.T) {
	campaigns, invites := setupCampaignTestDB(t)

	c, _ := campaigns.Create("Invitations", "You're invited", model.TemplateInvitation)
	inv, _ := invites.Create(model.InviteTypeSingle)
	send, _ := campaigns.CreateSend(c.ID, inv.ID)

	if err := campaigns.RecordOpen(send.ID); err != nil {
		t.Fatalf("record open: %v", err)
	}
	if err := campaigns.RecordOpen(send.ID); err != nil {
		t.Fatalf("record second open: %v", err)
	}

	got, _ := campaigns.GetSendByID(send.ID)
	if got.OpenedCount != 2 {
		t.Errorf("opened_count = %d, want 2", got.OpenedCount)
	}
	if got.OpenedAt == nil {
		t.Fatal("expected opened_at to be set")
	}
	firstOpen := *got.OpenedAt

	// opened_at keeps the first-open timestamp on later opens
	campaigns.RecordOpen(send.ID)
	got, _ = campaigns.GetSendByID(send.ID)
	if !got.OpenedAt.Equal(firstOpen) {
		t.Error("opened_at should not change after the first open")
	}

	opened, _ := campaigns.CountOpenedByCampaign(c.ID)
	if opened != 1 {
		t.Errorf("opened sends = %d, want 1", opened)
	}
}

func TestRecordOpenUnknownID(t *testing.T) {
	campaigns, _ := setupCampaignTestDB(t)

	if err := campaigns.RecordOpen("nope"); err != nil {
		t.Errorf("unknown send id should be a no-op, got %v", err)
	}
}
