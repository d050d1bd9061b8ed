package handlers

import (
	"encoding/json"
	"net/http"

	"website_speed_test/internal/http/middleware"

	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func sendError(w http.ResponseWriter, r *http.Request, logger *log.Logger, message string, err error, code int) {
	reqID := middleware.RequestIDFromContext(r.Context())
	logger.WithFields(log.Fields{
		"error":      err,
		"code":       code,
		"request_id": reqID,
	}).Error(message)

	response := ErrorResponse{
		Message:   message,
		Code:      code,
		RequestID: reqID,
	}
	if err != nil {
		response.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}
