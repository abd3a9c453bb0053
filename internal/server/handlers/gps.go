package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/internal/metrics"
	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/internal/server/broadcast"
	"github.com/iudanet/startline/internal/server/gps"
	"github.com/iudanet/startline/internal/server/storage"
	"github.com/iudanet/startline/pkg/api"
)

// Причины отказа для метрики gps_rejected_total
const (
	rejectMethod   = "method"
	rejectBody     = "body"
	rejectFormat   = "format"
	rejectInvalid  = "invalid"
	rejectUnknown  = "unknown_device"
	rejectInactive = "inactive_device"
	rejectStorage  = "storage"
)

// GPSHandler принимает точки от GPS трекеров
type GPSHandler struct {
	logger    *slog.Logger
	devices   storage.DeviceStorage
	tracking  storage.TrackingStorage
	publisher broadcast.Publisher
	clock     clockwork.Clock
	metrics   *metrics.Server
}

// NewGPSHandler creates the webhook handler. m may be nil.
func NewGPSHandler(
	logger *slog.Logger,
	devices storage.DeviceStorage,
	tracking storage.TrackingStorage,
	publisher broadcast.Publisher,
	clock clockwork.Clock,
	m *metrics.Server,
) *GPSHandler {
	if publisher == nil {
		publisher = broadcast.NopPublisher{}
	}
	return &GPSHandler{
		logger:    logger,
		devices:   devices,
		tracking:  tracking,
		publisher: publisher,
		clock:     clock,
		metrics:   m,
	}
}

// Webhook обрабатывает POST /gps-webhook.
// Тело: JSON или кадр +RESP:GTFRI / +BUFF:GTFRI.
func (h *GPSHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		h.metrics.RecordGPSRejected(rejectMethod)
		w.Header().Set("Allow", "POST, OPTIONS")
		sendError(h.logger, w, "method not allowed", "", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		h.metrics.RecordGPSRejected(rejectBody)
		sendError(h.logger, w, "failed to read body", err.Error(), http.StatusBadRequest)
		return
	}

	reading, err := gps.Parse(body)
	if err != nil {
		reason := rejectInvalid
		if errors.Is(err, gps.ErrUnrecognizedFormat) {
			reason = rejectFormat
		}
		h.metrics.RecordGPSRejected(reason)
		h.logger.WarnContext(ctx, "gps payload rejected", slog.String("reason", reason), slog.Any("error", err))
		sendError(h.logger, w, "invalid payload", err.Error(), http.StatusBadRequest)
		return
	}

	device, err := h.devices.GetDevice(ctx, reading.IMEI)
	if err != nil {
		if errors.Is(err, storage.ErrDeviceNotFound) {
			h.metrics.RecordGPSRejected(rejectUnknown)
			h.logger.WarnContext(ctx, "gps point from unknown device", slog.String("imei", reading.IMEI))
			sendError(h.logger, w, "device not registered", reading.IMEI, http.StatusNotFound)
			return
		}
		h.metrics.RecordGPSRejected(rejectStorage)
		h.logger.ErrorContext(ctx, "failed to look up device", slog.String("imei", reading.IMEI), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", err.Error(), http.StatusInternalServerError)
		return
	}
	if !device.Active {
		h.metrics.RecordGPSRejected(rejectInactive)
		h.logger.WarnContext(ctx, "gps point from inactive device", slog.String("imei", reading.IMEI))
		sendError(h.logger, w, "device not registered", reading.IMEI, http.StatusNotFound)
		return
	}

	timestamp := reading.Timestamp
	if timestamp.IsZero() {
		// Устройство не прислало время фиксации
		timestamp = h.clock.Now().UTC()
	}

	point := &models.TrackingPoint{
		ID:        uuid.New().String(),
		IMEI:      reading.IMEI,
		Kind:      device.Kind,
		BoundID:   device.BoundID,
		Latitude:  reading.Latitude,
		Longitude: reading.Longitude,
		Speed:     reading.Speed,
		Heading:   reading.Heading,
		Altitude:  reading.Altitude,
		Battery:   reading.Battery,
		Timestamp: timestamp,
	}

	if err := h.tracking.InsertPoint(ctx, point); err != nil {
		h.metrics.RecordGPSRejected(rejectStorage)
		h.logger.ErrorContext(ctx, "failed to store gps point", slog.String("imei", reading.IMEI), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", err.Error(), http.StatusInternalServerError)
		return
	}
	h.metrics.RecordGPSPoint(string(device.Kind))

	if err := h.publisher.PublishPoint(ctx, point); err != nil {
		h.logger.WarnContext(ctx, "failed to broadcast gps point", slog.String("imei", reading.IMEI), slog.Any("error", err))
	}

	h.logger.DebugContext(ctx, "gps point stored",
		slog.String("imei", point.IMEI),
		slog.String("kind", string(point.Kind)),
		slog.String("bound_id", point.BoundID))

	sendJSON(h.logger, w, api.GPSResponse{
		Success:   true,
		IMEI:      point.IMEI,
		Timestamp: point.Timestamp,
	}, http.StatusOK)
}

// Track обрабатывает GET /api/v1/tracking/{kind}/{id}
func (h *GPSHandler) Track(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := models.DeviceKind(r.PathValue("kind"))
	boundID := r.PathValue("id")

	if !kind.Valid() {
		sendError(h.logger, w, "invalid kind", "kind must be runner or moto", http.StatusBadRequest)
		return
	}

	points, err := h.tracking.ListPoints(ctx, kind, boundID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tracking points",
			slog.String("kind", string(kind)), slog.String("bound_id", boundID), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", "", http.StatusInternalServerError)
		return
	}

	resp := api.TrackResponse{
		Kind:    string(kind),
		BoundID: boundID,
		Points:  make([]api.TrackingPoint, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, api.TrackingPoint{
			ID:        p.ID,
			IMEI:      p.IMEI,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Speed:     p.Speed,
			Heading:   p.Heading,
			Altitude:  p.Altitude,
			Battery:   p.Battery,
			Timestamp: p.Timestamp,
		})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
