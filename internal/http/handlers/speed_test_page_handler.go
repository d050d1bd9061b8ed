package handlers

import (
	"bytes"
	"net/http"

	"website_speed_test/internal/domain/models"
	"website_speed_test/internal/pkg/errors"
	"website_speed_test/internal/pkg/worker_pool"
	"website_speed_test/internal/service"
	"website_speed_test/internal/view"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

const maxFormBody = 64 << 10

// SpeedTestPageHandler serves the speed test page of each view and the form
// posts that drive it. Every post answers with a redirect back to the page.
type SpeedTestPageHandler struct {
	tester   *service.SpeedTester
	renderer *view.Renderer
	log      *log.Logger
}

func NewSpeedTestPageHandler(tester *service.SpeedTester, renderer *view.Renderer, log *log.Logger) *SpeedTestPageHandler {
	return &SpeedTestPageHandler{
		tester:   tester,
		renderer: renderer,
		log:      log,
	}
}

func viewPath(id string) string {
	return `/views/` + id
}

// Home opens a fresh view.
func (h *SpeedTestPageHandler) Home(w http.ResponseWriter, r *http.Request) {
	state := h.tester.NewView()
	http.Redirect(w, r, viewPath(state.ID), http.StatusSeeOther)
}

func (h *SpeedTestPageHandler) Show(w http.ResponseWriter, r *http.Request) {
	state, err := h.tester.View(chi.URLParam(r, `id`))
	if errors.Is(err, service.ErrViewNotFound) {
		http.Redirect(w, r, `/`, http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, state); err != nil {
		sendError(w, r, h.log, `failed to render page`, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set(`Content-Type`, `text/html; charset=utf-8`)
	w.Header().Set(`Cache-Control`, `no-store`)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *SpeedTestPageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, `id`)
	if !h.parseForm(w, r) {
		return
	}

	err := h.tester.Submit(r.Context(), id, r.PostFormValue(`url`))
	switch {
	case err == nil, errors.Is(err, service.ErrAnalysisInProgress):
		http.Redirect(w, r, viewPath(id), http.StatusSeeOther)
	case errors.Is(err, service.ErrViewNotFound):
		http.Redirect(w, r, `/`, http.StatusSeeOther)
	case errors.Is(err, worker_pool.ErrPoolStopped):
		sendError(w, r, h.log, `service is shutting down`, err, http.StatusServiceUnavailable)
	default:
		sendError(w, r, h.log, `failed to submit analysis`, err, http.StatusInternalServerError)
	}
}

func (h *SpeedTestPageHandler) SelectDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, `id`)
	if !h.parseForm(w, r) {
		return
	}

	err := h.tester.SelectDevice(id, models.Device(r.PostFormValue(`device`)))
	switch {
	case err == nil, errors.Is(err, service.ErrNoReport):
		http.Redirect(w, r, viewPath(id), http.StatusSeeOther)
	case errors.Is(err, service.ErrViewNotFound):
		http.Redirect(w, r, `/`, http.StatusSeeOther)
	case errors.Is(err, service.ErrUnknownDevice):
		sendError(w, r, h.log, `failed to select device`, err, http.StatusBadRequest)
	default:
		sendError(w, r, h.log, `failed to select device`, err, http.StatusInternalServerError)
	}
}

func (h *SpeedTestPageHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		sendError(w, r, h.log, `failed to parse form`, err, http.StatusBadRequest)
		return false
	}
	return true
}
