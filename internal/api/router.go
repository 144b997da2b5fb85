// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mybudget/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(envelopeHandler *handler.EnvelopeHandler, transactionHandler *handler.TransactionHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(RequestTimeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	routes := func(r chi.Router) {
		r.Route("/envelopes", func(r chi.Router) {
			r.Get("/", envelopeHandler.ListEnvelopes)
			r.Post("/", envelopeHandler.CreateEnvelope)
			r.Get("/{id}", envelopeHandler.GetEnvelope)
			r.Delete("/{id}", envelopeHandler.DeleteEnvelope)
			r.Patch("/{id}/restore", envelopeHandler.RestoreEnvelope)
		})
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionHandler.ListTransactions)
			r.Post("/", transactionHandler.PostTransaction)
		})
	}

	routes(r)
	// Older clients address the same API under /api.
	r.Route("/api", routes)

	return r
}
