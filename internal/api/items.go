package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/erazemk/cenik/internal/model"
	"github.com/erazemk/cenik/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	DB       *sql.DB
	Validate *validator.Validate
}

// itemRequest is the body for both create and update. The validation bounds
// are part of the API contract: names are 1-200 characters, descriptions at
// most 500, prices strictly positive.
type itemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("listing items")
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Search handles GET /items/search.
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, http.StatusBadRequest, "query parameter q required")
		return
	}

	items, err := store.SearchItems(r.Context(), h.DB, query)
	if err != nil {
		log.Error().Err(err).Msg("searching items")
		jsonError(w, http.StatusInternalServerError, "failed to search items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("getting item")
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item data")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.Name, req.Description, req.Price)
	if errors.Is(err, store.ErrDuplicateName) {
		jsonError(w, http.StatusConflict, "item name already in use")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("creating item")
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item data")
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, id, req.Name, req.Description, req.Price)
	if err != nil {
		log.Error().Err(err).Msg("updating item")
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	deleted, err := store.DeleteItem(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("deleting item")
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Discount handles POST /items/discount. The percent query parameter is
// required; an optional threshold restricts the discount to items priced
// above it.
func (h *ItemsHandler) Discount(w http.ResponseWriter, r *http.Request) {
	percent, err := strconv.ParseFloat(r.URL.Query().Get("percent"), 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid percent")
		return
	}
	if percent < 0 || percent > 100 {
		jsonError(w, http.StatusBadRequest, "percent must be between 0 and 100")
		return
	}

	var updated int
	if ts := r.URL.Query().Get("threshold"); ts != "" {
		threshold, err := strconv.ParseFloat(ts, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		updated, err = store.ApplyBulkDiscount(r.Context(), h.DB, threshold, percent)
		if err != nil {
			log.Error().Err(err).Msg("applying bulk discount")
			jsonError(w, http.StatusInternalServerError, "failed to apply discount")
			return
		}
	} else {
		updated, err = store.ApplyDiscount(r.Context(), h.DB, percent)
		if err != nil {
			log.Error().Err(err).Msg("applying discount")
			jsonError(w, http.StatusInternalServerError, "failed to apply discount")
			return
		}
	}

	jsonResponse(w, http.StatusOK, map[string]any{"updated": updated})
}
