package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/samandjonah/wedding-api/internal/model"
	"github.com/samandjonah/wedding-api/internal/registry"
	"github.com/samandjonah/wedding-api/internal/store"
	"github.com/samandjonah/wedding-api/internal/websocket"
)

const maxImageUploadBytes = 10 << 20

var allowedImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// RegistryHandler serves the admin side of the registry: catalog management,
// contribution review, image uploads, and aggregate stats.
type RegistryHandler struct {
	store     *store.RegistryStore
	svc       *registry.Service
	hub       *websocket.Hub
	uploadDir string
}

func NewRegistryHandler(s *store.RegistryStore, svc *registry.Service, hub *websocket.Hub, uploadDir string) *RegistryHandler {
	return &RegistryHandler{store: s, svc: svc, hub: hub, uploadDir: uploadDir}
}

type categoryRequest struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

func (h *RegistryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list categories"})
		return
	}
	if categories == nil {
		categories = []model.HoneymoonCategory{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *RegistryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	category, err := h.store.CreateCategory(req.Name, req.DisplayOrder)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create category"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("category", "created", category.ID, nil))
	writeJSON(w, http.StatusCreated, category)
}

func (h *RegistryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	category, err := h.store.UpdateCategory(id, req.Name, req.DisplayOrder)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update category"})
		return
	}
	if category == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("category", "updated", id, nil))
	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory removes a category. Items under it are left in place with a
// nil category and show up in the synthetic uncategorized bucket.
func (h *RegistryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteCategory(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete category"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("category", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type itemRequest struct {
	CategoryID   *string `json:"category_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PriceCents   int64   `json:"price_cents"`
	DisplayOrder int     `json:"display_order"`
}

func (h *RegistryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListItems()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list items"})
		return
	}
	if items == nil {
		items = []model.HoneymoonItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *RegistryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.PriceCents <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price_cents must be positive"})
		return
	}

	item, err := h.store.CreateItem(req.CategoryID, req.Name, req.Description, req.PriceCents, req.DisplayOrder)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("item", "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *RegistryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.PriceCents <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price_cents must be positive"})
		return
	}

	item, err := h.store.UpdateItem(id, req.CategoryID, req.Name, req.Description, req.PriceCents, req.DisplayOrder)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	// A price change can flip the funded flag, so re-derive the totals
	if err := h.svc.Recompute(id); err != nil {
		log.Printf("failed to recompute item %s: %v", id, err)
	}
	item, err = h.store.GetItemByID(id)
	if err != nil || item == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}

	h.hub.Broadcast(websocket.NewEvent("item", "updated", id, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *RegistryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteItem(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("item", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadItemImage stores a multipart image upload under the upload directory
// and points the item at it. The stored filename is a fresh UUID so uploads
// never collide or overwrite each other.
func (h *RegistryHandler) UploadItemImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := h.store.GetItemByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported image type"})
		return
	}

	filename := uuid.New().String() + ext
	dir := filepath.Join(h.uploadDir, "registry")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save image"})
		return
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save image"})
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save image"})
		return
	}

	item, err = h.store.SetItemImage(id, "/uploads/registry/"+filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}

	h.hub.Broadcast(websocket.NewEvent("item", "updated", id, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *RegistryHandler) ListContributions(w http.ResponseWriter, r *http.Request) {
	contributions, err := h.svc.ListContributions()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list contributions"})
		return
	}
	if contributions == nil {
		contributions = []model.RegistryContribution{}
	}
	writeJSON(w, http.StatusOK, contributions)
}

// UpdateContribution moves a contribution through its lifecycle. Confirming
// stamps confirmed_at; rejecting pulls the amount back out of the item total.
func (h *RegistryHandler) UpdateContribution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Status model.ContributionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	contribution, err := h.svc.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrContributionNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "contribution not found"})
		case errors.Is(err, registry.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update contribution"})
		}
		return
	}

	h.hub.Broadcast(websocket.NewEvent("contribution", "updated", id, map[string]any{"status": string(req.Status)}))
	writeJSON(w, http.StatusOK, contribution)
}

func (h *RegistryHandler) DeleteContribution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.DeleteContribution(id); err != nil {
		if errors.Is(err, registry.ErrContributionNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "contribution not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete contribution"})
		return
	}
	h.hub.Broadcast(websocket.NewEvent("contribution", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *RegistryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
