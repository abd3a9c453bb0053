// Package server assembles the race server HTTP surface.
package server

import (
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/iudanet/startline/internal/metrics"
	"github.com/iudanet/startline/internal/server/broadcast"
	"github.com/iudanet/startline/internal/server/handlers"
	"github.com/iudanet/startline/internal/server/middleware"
	"github.com/iudanet/startline/internal/server/storage"
	"github.com/iudanet/startline/pkg/api"
)

// Store объединяет хранилища, нужные обработчикам
type Store interface {
	handlers.Pinger
	storage.DeviceStorage
	storage.TrackingStorage
	storage.StartStorage
}

// Deps зависимости HTTP слоя
type Deps struct {
	Logger      *slog.Logger
	Store       Store
	Publisher   broadcast.Publisher
	Clock       clockwork.Clock
	Metrics     *metrics.Server
	JWT         handlers.JWTConfig
	CORSOrigins []string
}

// NewRouter регистрирует маршруты и оборачивает их в общую цепочку middleware:
// recovery -> logging -> server time -> CORS -> mux.
func NewRouter(d Deps) http.Handler {
	health := handlers.NewHealthHandler(d.Logger, d.Store, d.Clock)
	starts := handlers.NewStartsHandler(d.Logger, d.Store, d.Clock)
	devices := handlers.NewDevicesHandler(d.Logger, d.Store, d.Clock)
	gps := handlers.NewGPSHandler(d.Logger, d.Store, d.Store, d.Publisher, d.Clock, d.Metrics)

	auth := middleware.AuthMiddleware(d.Logger, d.JWT)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()

	// Открытые маршруты
	mux.HandleFunc("GET /api/v1/health", health.Health)
	mux.HandleFunc("/gps-webhook", gps.Webhook)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	// API станции старта
	mux.Handle("GET /api/v1/starts", protected(starts.Find))
	mux.Handle("POST /api/v1/starts", protected(starts.Create))
	mux.Handle("PUT /api/v1/starts/{id}", protected(starts.Update))
	mux.Handle("HEAD /api/v1/starts/{id}", protected(starts.Probe))

	// Реестр трекеров и треки
	mux.Handle("GET /api/v1/devices/{imei}", protected(devices.Get))
	mux.Handle("PUT /api/v1/devices/{imei}", protected(devices.Put))
	mux.Handle("GET /api/v1/tracking/{kind}/{id}", protected(gps.Track))

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
		},
		AllowedHeaders:       []string{"Authorization", "Content-Type"},
		ExposedHeaders:       []string{api.HeaderServerTime, "Date"},
		OptionsSuccessStatus: http.StatusOK,
	})

	var handler http.Handler = c.Handler(mux)
	handler = middleware.ServerTimeMiddleware(d.Clock)(handler)
	handler = middleware.LoggingWithSkip(d.Logger, d.Metrics, []string{"/api/v1/health", "/metrics"})(handler)
	handler = middleware.RecoveryMiddleware(d.Logger)(handler)

	return handler
}
