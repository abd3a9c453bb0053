package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/startline/pkg/api"
)

// writeError отвечает в том же формате, что и обработчики API
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}
