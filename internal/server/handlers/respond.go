package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/startline/pkg/api"
)

// maxBodySize ограничивает размер тела запроса
const maxBodySize = 64 << 10

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message, details string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{Error: message, Details: details}, statusCode)
}
