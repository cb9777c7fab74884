package web

import (
	"database/sql"
	"net/http"

	webembed "github.com/erazemk/cenik/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.HandleFunc("GET /items/ui", s.ItemsPage)
	mux.HandleFunc("POST /items/ui", s.ItemCreateSubmit)
	mux.HandleFunc("GET /items/ui/new", s.ItemNewPage)
	mux.HandleFunc("GET /items/ui/{id}", s.ItemDetailPage)
	mux.HandleFunc("POST /items/ui/{id}/delete", s.ItemDeleteSubmit)

	return mux, nil
}
