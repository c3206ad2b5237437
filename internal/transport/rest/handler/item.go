package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"pulsecheck/internal/catalog"
	"pulsecheck/internal/model"
	"pulsecheck/internal/transport/rest/middleware"
)

// maxImportBytes caps YAML catalog uploads
const maxImportBytes = 4 << 20

// ItemCatalog is the catalog surface the item endpoints need
type ItemCatalog interface {
	List(ctx context.Context, construct model.Construct) ([]model.Item, error)
	Get(ctx context.Context, itemID string) (*model.Item, error)
	Create(ctx context.Context, item model.Item) (*model.Item, error)
	Update(ctx context.Context, itemID string, item model.Item) (*model.Item, error)
	Delete(ctx context.Context, itemID string) error
	Import(ctx context.Context, items []model.Item) (int, error)
}

// ItemHandler handles item bank endpoints
type ItemHandler struct {
	catalog ItemCatalog
}

// NewItemHandler creates a new item handler
func NewItemHandler(c ItemCatalog) *ItemHandler {
	return &ItemHandler{catalog: c}
}

// List handles GET /v1/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	construct := model.Construct(r.URL.Query().Get("construct"))
	items, err := h.catalog.List(r.Context(), construct)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Get handles GET /v1/items/{itemId}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Get(r.Context(), mux.Vars(r)["itemId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /v1/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var item model.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.catalog.Create(r.Context(), item)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /v1/items/{itemId}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var item model.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.catalog.Update(r.Context(), mux.Vars(r)["itemId"], item)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /v1/items/{itemId}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.catalog.Delete(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /v1/items/import with a YAML catalog body
func (h *ItemHandler) Import(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := catalog.Load(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		msg := "invalid catalog body"
		if errors.Is(err, catalog.ErrInvalidCatalog) {
			msg = err.Error()
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "empty catalog")
		return
	}

	n, err := h.catalog.Import(r.Context(), items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}
