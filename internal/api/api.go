// Package api exposes URL resolution over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// MaxBatchSize caps the number of URLs accepted by one batch request.
const MaxBatchSize = 100

// Resolver is the resolution pipeline served by the API.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) models.Result
	ResolveBatch(ctx context.Context, urls []string) []models.Result
}

type API struct {
	router      *mux.Router
	resolver    Resolver
	gatherer    prometheus.Gatherer
	corsOrigins []string
	log         *slog.Logger
}

// New builds the API and registers its routes. corsOrigins defaults to any origin.
func New(resolver Resolver, gatherer prometheus.Gatherer, corsOrigins []string, log *slog.Logger) *API {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	api := &API{
		router:      mux.NewRouter(),
		resolver:    resolver,
		gatherer:    gatherer,
		corsOrigins: corsOrigins,
		log:         log,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	a.router.HandleFunc("/api/resolve", a.handleResolve).Methods(http.MethodGet)
	a.router.HandleFunc("/api/resolve/batch", a.handleResolveBatch).Methods(http.MethodPost)

	a.router.HandleFunc("/healthz", a.handleHealth).Methods(http.MethodGet)
	a.router.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// Handler returns the router wrapped in the CORS policy.
func (a *API) Handler() http.Handler {
	corsOptions := cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}

	return cors.New(corsOptions).Handler(a.router)
}
