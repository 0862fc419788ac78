package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	documentsPath = "/api/collections/{collection}/documents"
	documentPath  = "/api/collections/{collection}/documents/{id}"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/collections/", h.getCollections)
	})

	// document routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get(documentsPath, h.queryDocuments)
		r.With(h.bodyHashing).Put(documentPath, h.putDocument)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
