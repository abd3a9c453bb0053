package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/internal/server/storage"
	"github.com/iudanet/startline/internal/validation"
	"github.com/iudanet/startline/pkg/api"
)

// DevicesHandler управляет реестром GPS трекеров
type DevicesHandler struct {
	logger  *slog.Logger
	storage storage.DeviceStorage
	clock   clockwork.Clock
}

// NewDevicesHandler creates a new device registry handler
func NewDevicesHandler(logger *slog.Logger, deviceStorage storage.DeviceStorage, clock clockwork.Clock) *DevicesHandler {
	return &DevicesHandler{
		logger:  logger,
		storage: deviceStorage,
		clock:   clock,
	}
}

// Get обрабатывает GET /api/v1/devices/{imei}
func (h *DevicesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	imei := r.PathValue("imei")

	device, err := h.storage.GetDevice(ctx, imei)
	if err != nil {
		if errors.Is(err, storage.ErrDeviceNotFound) {
			sendError(h.logger, w, "device not found", "", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get device", slog.String("imei", imei), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", "", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toAPIDevice(device), http.StatusOK)
}

// Put обрабатывает PUT /api/v1/devices/{imei}: регистрация или перепривязка
func (h *DevicesHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	imei := r.PathValue("imei")

	if err := validation.ValidateIMEI(imei); err != nil {
		sendError(h.logger, w, "invalid imei", err.Error(), http.StatusBadRequest)
		return
	}

	var req api.DeviceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	kind := models.DeviceKind(req.Kind)
	if !kind.Valid() {
		sendError(h.logger, w, "invalid kind", "kind must be runner or moto", http.StatusBadRequest)
		return
	}
	if req.BoundID == "" {
		sendError(h.logger, w, "bound_id is required", "", http.StatusBadRequest)
		return
	}

	now := h.clock.Now().UTC()
	device := &models.Device{
		IMEI:      imei,
		Kind:      kind,
		BoundID:   req.BoundID,
		Active:    req.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.storage.UpsertDevice(ctx, device); err != nil {
		h.logger.ErrorContext(ctx, "failed to upsert device", slog.String("imei", imei), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", "", http.StatusInternalServerError)
		return
	}

	// Возвращаем сохраненную запись с исходным created_at
	saved, err := h.storage.GetDevice(ctx, imei)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reload device", slog.String("imei", imei), slog.Any("error", err))
		saved = device
	}

	h.logger.InfoContext(ctx, "device registered",
		slog.String("imei", imei),
		slog.String("kind", string(kind)),
		slog.String("bound_id", req.BoundID),
		slog.Bool("active", req.Active))

	sendJSON(h.logger, w, toAPIDevice(saved), http.StatusOK)
}

func toAPIDevice(d *models.Device) api.DeviceResponse {
	return api.DeviceResponse{
		IMEI:      d.IMEI,
		Kind:      string(d.Kind),
		BoundID:   d.BoundID,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
