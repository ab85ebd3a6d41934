package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

type errorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeBroadcastError maps each broadcast outcome onto a distinct status so
// callers can present different remediation text.
func writeBroadcastError(w http.ResponseWriter, event *domain.BroadcastEvent, err error) {
	status := http.StatusInternalServerError
	code := "internal"
	switch {
	case errors.Is(err, domain.ErrNetwork):
		status, code = http.StatusBadGateway, "network_error"
	case errors.Is(err, domain.ErrGatewayTimeout):
		status, code = http.StatusGatewayTimeout, "gateway_timeout"
	case errors.Is(err, domain.ErrNoSellersFound):
		status, code = http.StatusUnprocessableEntity, "no_sellers_found"
	case errors.Is(err, domain.ErrRateLimited):
		status, code = http.StatusTooManyRequests, "rate_limited"
	}

	resp := errorResponse{Error: code, Message: err.Error()}
	if event != nil {
		resp.TransactionID = event.TransactionID
	}
	writeJSON(w, status, resp)
}
