package web

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/cenik/internal/model"
	"github.com/erazemk/cenik/internal/store"
)

// ItemsPage handles GET /items/ui.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), s.DB)
	if err != nil {
		log.Error().Err(err).Msg("listing items")
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "Items"},
		Items:    items,
	})
}

// ItemNewPage handles GET /items/ui/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "item_new.html", &struct {
		PageData
	}{
		PageData: PageData{Title: "New item"},
	})
}

// ItemCreateSubmit handles POST /items/ui.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	description := r.FormValue("description")
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)

	if name == "" {
		http.Redirect(w, r, "/items/ui", http.StatusSeeOther)
		return
	}

	// A duplicate name silently drops the submission, same as any other
	// failure; the form is a convenience front-end over the API.
	if _, err := store.CreateItem(r.Context(), s.DB, name, description, price); err != nil {
		log.Warn().Err(err).Str("item", name).Msg("creating item from form")
	} else {
		log.Info().Str("item", name).Msg("item created")
	}
	http.Redirect(w, r, "/items/ui", http.StatusSeeOther)
}

// ItemDetailPage handles GET /items/ui/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("getting item")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: item.Name},
		Item:     item,
	})
}

// ItemDeleteSubmit handles POST /items/ui/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	deleted, err := store.DeleteItem(r.Context(), s.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("deleting item")
	}
	if deleted {
		log.Info().Int64("item", id).Msg("item deleted")
	}
	http.Redirect(w, r, "/items/ui", http.StatusSeeOther)
}
