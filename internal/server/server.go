package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/samandjonah/wedding-api/internal/campaign"
	"github.com/samandjonah/wedding-api/internal/email"
	"github.com/samandjonah/wedding-api/internal/guestlist"
	"github.com/samandjonah/wedding-api/internal/handler"
	"github.com/samandjonah/wedding-api/internal/middleware"
	"github.com/samandjonah/wedding-api/internal/registry"
	"github.com/samandjonah/wedding-api/internal/store"
	ws "github.com/samandjonah/wedding-api/internal/websocket"
)

// Config carries the non-database settings the server needs.
type Config struct {
	BaseURL      string
	FrontendURL  string
	VenueMapURL  string
	HotelInfoURL string
	UploadDir    string
}

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	guestH      *handler.GuestHandler
	inviteH     *handler.InviteHandler
	registryH   *handler.RegistryHandler
	publicH     *handler.PublicHandler
	campaignH   *handler.CampaignHandler
	rateLimiter *middleware.RateLimiter
	uploadDir   string
	logger      *slog.Logger
}

func New(db *sql.DB, emailClient *email.Client, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	guestStore := store.NewGuestStore(db)
	inviteStore := store.NewInviteStore(db)
	registryStore := store.NewRegistryStore(db)
	contributionStore := store.NewContributionStore(db)
	campaignStore := store.NewCampaignStore(db)

	guestlistSvc := guestlist.NewService(guestStore, inviteStore)
	registrySvc := registry.NewService(registryStore, contributionStore)

	vars := email.TemplateVars{
		WebsiteURL:  cfg.FrontendURL,
		VenueMapURL: cfg.VenueMapURL,
		HotelURL:    cfg.HotelInfoURL,
	}
	dispatcher := campaign.NewDispatcher(campaignStore, inviteStore, emailClient, cfg.BaseURL, vars, logger.With("component", "campaign"))

	return &Server{
		db:          db,
		hub:         hub,
		guestH:      handler.NewGuestHandler(guestStore, hub),
		inviteH:     handler.NewInviteHandler(guestlistSvc, hub),
		registryH:   handler.NewRegistryHandler(registryStore, registrySvc, hub, cfg.UploadDir),
		publicH:     handler.NewPublicHandler(registrySvc, campaignStore, hub),
		campaignH:   handler.NewCampaignHandler(campaignStore, inviteStore, guestlistSvc, dispatcher, hub),
		rateLimiter: middleware.NewRateLimiter(),
		uploadDir:   cfg.UploadDir,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Admin: guest list
	mux.HandleFunc("GET /api/admin/guests", s.guestH.List)
	mux.HandleFunc("POST /api/admin/guests", s.guestH.Create)
	mux.HandleFunc("POST /api/admin/guests/import", s.guestH.ImportCSV)
	mux.HandleFunc("GET /api/admin/guests/{id}", s.guestH.Get)
	mux.HandleFunc("PUT /api/admin/guests/{id}", s.guestH.Update)
	mux.HandleFunc("DELETE /api/admin/guests/{id}", s.guestH.Delete)
	mux.HandleFunc("PATCH /api/admin/guests/{id}/removed", s.guestH.SetRemoved)

	// Admin: invites
	mux.HandleFunc("GET /api/admin/invites", s.inviteH.List)
	mux.HandleFunc("POST /api/admin/invites", s.inviteH.Create)
	mux.HandleFunc("POST /api/admin/invites/auto-suggest", s.inviteH.AutoSuggest)
	mux.HandleFunc("GET /api/admin/invites/{id}", s.inviteH.Get)
	mux.HandleFunc("PUT /api/admin/invites/{id}", s.inviteH.Update)
	mux.HandleFunc("DELETE /api/admin/invites/{id}", s.inviteH.Delete)

	// Admin: email campaigns
	mux.HandleFunc("GET /api/admin/campaigns", s.campaignH.List)
	mux.HandleFunc("POST /api/admin/campaigns", s.campaignH.Create)
	mux.HandleFunc("GET /api/admin/campaigns/{id}/preview", s.campaignH.Preview)
	mux.HandleFunc("POST /api/admin/campaigns/{id}/send", s.campaignH.Send)
	mux.HandleFunc("GET /api/admin/campaigns/{id}/stats", s.campaignH.Stats)
	mux.HandleFunc("GET /api/admin/campaigns/{id}/recipients", s.campaignH.Recipients)

	// Admin: registry catalog
	mux.HandleFunc("GET /api/admin/registry/categories", s.registryH.ListCategories)
	mux.HandleFunc("POST /api/admin/registry/categories", s.registryH.CreateCategory)
	mux.HandleFunc("PUT /api/admin/registry/categories/{id}", s.registryH.UpdateCategory)
	mux.HandleFunc("DELETE /api/admin/registry/categories/{id}", s.registryH.DeleteCategory)
	mux.HandleFunc("GET /api/admin/registry/items", s.registryH.ListItems)
	mux.HandleFunc("POST /api/admin/registry/items", s.registryH.CreateItem)
	mux.HandleFunc("PUT /api/admin/registry/items/{id}", s.registryH.UpdateItem)
	mux.HandleFunc("DELETE /api/admin/registry/items/{id}", s.registryH.DeleteItem)
	mux.HandleFunc("POST /api/admin/registry/items/{id}/image", s.registryH.UploadItemImage)

	// Admin: contribution review
	mux.HandleFunc("GET /api/admin/registry/contributions", s.registryH.ListContributions)
	mux.HandleFunc("PUT /api/admin/registry/contributions/{id}", s.registryH.UpdateContribution)
	mux.HandleFunc("DELETE /api/admin/registry/contributions/{id}", s.registryH.DeleteContribution)
	mux.HandleFunc("GET /api/admin/registry/stats", s.registryH.Stats)

	// Admin: live dashboard feed
	mux.Handle("GET /api/admin/ws", ws.Handler(s.hub))

	// Public registry
	mux.HandleFunc("GET /api/registry/categories", s.publicH.Catalog)
	mux.HandleFunc("GET /api/registry/items/{id}", s.publicH.GetItem)
	mux.HandleFunc("POST /api/registry/contributions", s.rateLimitedHandler(s.publicH.CreateContribution))

	// Email open tracking
	mux.HandleFunc("GET /api/track/{send_id}/open.png", s.publicH.TrackOpen)

	// Uploaded registry images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))

	mux.HandleFunc("GET /health", s.healthHandler)

	h := middleware.CORS()(mux)
	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
