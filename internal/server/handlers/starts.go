package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/internal/server/storage"
	"github.com/iudanet/startline/internal/validation"
	"github.com/iudanet/startline/pkg/api"
)

// StartsHandler обслуживает официальные записи стартов дистанций
type StartsHandler struct {
	logger  *slog.Logger
	storage storage.StartStorage
	clock   clockwork.Clock
}

// NewStartsHandler creates a new start records handler
func NewStartsHandler(logger *slog.Logger, startStorage storage.StartStorage, clock clockwork.Clock) *StartsHandler {
	return &StartsHandler{
		logger:  logger,
		storage: startStorage,
		clock:   clock,
	}
}

// Find обрабатывает GET /api/v1/starts?target_id=X.
// HEAD возвращает только заголовки и служит замером времени.
func (h *StartsHandler) Find(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx := r.Context()
	targetID := r.URL.Query().Get("target_id")
	if err := validation.ValidateTargetID(targetID); err != nil {
		sendError(h.logger, w, "invalid target_id", err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.storage.GetStartByTarget(ctx, targetID)
	if err != nil {
		if errors.Is(err, storage.ErrStartNotFound) {
			sendError(h.logger, w, "start record not found", "", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to find start record", slog.String("target_id", targetID), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", "", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toAPIStart(record), http.StatusOK)
}

// Create обрабатывает POST /api/v1/starts
func (h *StartsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateStartRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateTargetID(req.TargetID); err != nil {
		sendError(h.logger, w, "invalid target_id", err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateTargetID(req.EventGroupID); err != nil {
		sendError(h.logger, w, "invalid event_group_id", err.Error(), http.StatusBadRequest)
		return
	}
	if req.StartTime.IsZero() {
		sendError(h.logger, w, "start_time is required", "", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Start " + req.TargetID
	}

	now := h.clock.Now().UTC()
	record := &models.StartRecord{
		ID:           uuid.New().String(),
		TargetID:     req.TargetID,
		EventGroupID: req.EventGroupID,
		Name:         name,
		StartTime:    req.StartTime.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.storage.CreateStart(ctx, record); err != nil {
		if errors.Is(err, storage.ErrStartExists) {
			sendError(h.logger, w, "start record already exists", "target_id "+req.TargetID, http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create start record", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", "", http.StatusInternalServerError)
		return
	}

	organizer, _ := GetOrganizerID(ctx)
	h.logger.InfoContext(ctx, "start record created",
		slog.String("id", record.ID),
		slog.String("target_id", record.TargetID),
		slog.Time("start_time", record.StartTime),
		slog.String("organizer_id", organizer))

	sendJSON(h.logger, w, toAPIStart(record), http.StatusCreated)
}

// Update обрабатывает PUT /api/v1/starts/{id}
func (h *StartsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if id == "" {
		sendError(h.logger, w, "missing id", "", http.StatusBadRequest)
		return
	}

	var req api.UpdateStartRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.StartTime.IsZero() {
		sendError(h.logger, w, "start_time is required", "", http.StatusBadRequest)
		return
	}

	record, err := h.storage.UpdateStartTime(ctx, id, req.StartTime.UTC(), h.clock.Now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrStartNotFound) {
			sendError(h.logger, w, "start record not found", "", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update start record", slog.String("id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", "", http.StatusInternalServerError)
		return
	}

	organizer, _ := GetOrganizerID(ctx)
	h.logger.InfoContext(ctx, "start time corrected",
		slog.String("id", record.ID),
		slog.String("target_id", record.TargetID),
		slog.Time("start_time", record.StartTime),
		slog.String("organizer_id", organizer))

	sendJSON(h.logger, w, toAPIStart(record), http.StatusOK)
}

// Probe обрабатывает HEAD /api/v1/starts/{id}: только заголовки времени
func (h *StartsHandler) Probe(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func toAPIStart(r *models.StartRecord) api.StartRecord {
	return api.StartRecord{
		ID:           r.ID,
		TargetID:     r.TargetID,
		EventGroupID: r.EventGroupID,
		Name:         r.Name,
		StartTime:    r.StartTime,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
