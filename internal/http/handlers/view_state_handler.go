package handlers

import (
	"encoding/json"
	"net/http"

	"website_speed_test/internal/pkg/errors"
	"website_speed_test/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// ViewStateHandler exposes a view's state as JSON for scripted clients.
type ViewStateHandler struct {
	tester *service.SpeedTester
	log    *log.Logger
}

func NewViewStateHandler(tester *service.SpeedTester, log *log.Logger) *ViewStateHandler {
	return &ViewStateHandler{tester: tester, log: log}
}

func (h *ViewStateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	state, err := h.tester.View(chi.URLParam(r, `id`))
	if errors.Is(err, service.ErrViewNotFound) {
		sendError(w, r, h.log, `view not found`, err, http.StatusNotFound)
		return
	}

	body, err := json.Marshal(state)
	if err != nil {
		sendError(w, r, h.log, `failed to encode response`, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
