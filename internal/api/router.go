package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter constructs a chi router with all API endpoints registered.
func NewRouter(svc Quoter) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/categories", h.CategoriesHandler)
	r.Post("/quotes", h.QuoteHandler)

	return r
}
