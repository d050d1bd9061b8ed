package service

import (
	"context"
	"sync"
	"time"

	"website_speed_test/internal/domain/adaptors"
	"website_speed_test/internal/domain/models"
	"website_speed_test/internal/pkg/errors"
	"website_speed_test/internal/pkg/metrics"
	"website_speed_test/internal/pkg/worker_pool"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrViewNotFound       = errors.Sentinel("view not found")
	ErrAnalysisInProgress = errors.Sentinel("analysis already in progress")
	ErrNoReport           = errors.Sentinel("no report to display")
	ErrUnknownDevice      = errors.Sentinel("unknown device")
)

const (
	msgDefaultResponse = `Failed to fetch speed test results.`
	msgNoResponse      = `Error: No response from server. Is the backend running?`
)

// SpeedTester owns the state of every open view and runs their analyses on
// a worker pool. Each view has at most one analysis in flight.
type SpeedTester struct {
	log     *log.Logger
	client  adaptors.SpeedTestClient
	pool    *worker_pool.WorkerPool
	idleTTL time.Duration
	now     func() time.Time

	mu    sync.Mutex
	views map[string]*models.ViewState
}

func NewSpeedTester(log *log.Logger, client adaptors.SpeedTestClient, pool *worker_pool.WorkerPool, idleTTL time.Duration) *SpeedTester {
	s := &SpeedTester{
		log:     log,
		client:  client,
		pool:    pool,
		idleTTL: idleTTL,
		now:     time.Now,
		views:   map[string]*models.ViewState{},
	}
	go s.collect()
	return s
}

// NewView creates an empty view showing the mobile report.
func (s *SpeedTester) NewView() models.ViewState {
	view := &models.ViewState{
		ID:        uuid.NewString(),
		Device:    models.DeviceMobile,
		UpdatedAt: s.now(),
	}

	s.mu.Lock()
	s.views[view.ID] = view
	metrics.ViewsActive.Set(float64(len(s.views)))
	s.mu.Unlock()

	s.log.WithField(`view_id`, view.ID).Debug(`view created`)
	return *view
}

// View returns a snapshot of the view.
func (s *SpeedTester) View(id string) (models.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[id]
	if !ok {
		return models.ViewState{}, ErrViewNotFound
	}
	return *view, nil
}

// Submit starts an analysis of targetURL for the view. The previous result
// and error are cleared right away; the outcome is applied when the fetch
// completes. A view that is already loading rejects the submission.
func (s *SpeedTester) Submit(ctx context.Context, id, targetURL string) error {
	s.mu.Lock()
	view, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return ErrViewNotFound
	}
	if view.Loading {
		s.mu.Unlock()
		s.log.WithContext(ctx).WithField(`view_id`, id).Warn(`submission rejected: analysis in progress`)
		return ErrAnalysisInProgress
	}

	previous := *view
	view.URL = targetURL
	view.Loading = true
	view.Error = ``
	view.Reports = nil
	view.UpdatedAt = s.now()
	s.mu.Unlock()

	s.log.WithContext(ctx).WithFields(log.Fields{
		`view_id`: id,
		`url`:     targetURL,
	}).Info(`analysis submitted`)

	err := s.pool.Submit(id, func(ctx context.Context) (any, error) {
		return s.client.Fetch(ctx, targetURL)
	})
	if err != nil {
		s.mu.Lock()
		if view, ok := s.views[id]; ok {
			view.Loading = false
			view.Error = previous.Error
			view.Reports = previous.Reports
		}
		s.mu.Unlock()
		return errors.Wrap(err, `failed to schedule analysis`)
	}
	return nil
}

// SelectDevice switches which half of the held result is displayed. It never
// issues a request.
func (s *SpeedTester) SelectDevice(id string, device models.Device) error {
	if _, ok := models.ParseDevice(string(device)); !ok {
		return ErrUnknownDevice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[id]
	if !ok {
		return ErrViewNotFound
	}
	if view.Reports == nil {
		return ErrNoReport
	}
	view.Device = device
	view.UpdatedAt = s.now()
	return nil
}

// Sweep drops views that have been idle for longer than the TTL. Views with
// an analysis in flight are kept.
func (s *SpeedTester) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, view := range s.views {
		if view.Loading || now.Sub(view.UpdatedAt) < s.idleTTL {
			continue
		}
		delete(s.views, id)
		evicted++
	}
	metrics.ViewsActive.Set(float64(len(s.views)))

	if evicted > 0 {
		s.log.WithField(`evicted`, evicted).Debug(`idle views evicted`)
	}
	return evicted
}

// Run sweeps idle views every interval until ctx is done.
func (s *SpeedTester) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// collect applies finished analyses to their views until the pool closes its
// results channel.
func (s *SpeedTester) collect() {
	for res := range s.pool.ResultsCh {
		reports, _ := res.Result.(*models.SpeedTestReports)
		s.complete(res.ID, reports, res.Err)
	}
}

func (s *SpeedTester) complete(id string, reports *models.SpeedTestReports, err error) {
	entry := s.log.WithField(`view_id`, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[id]
	if !ok {
		entry.Warn(`analysis finished for a view that no longer exists`)
		return
	}

	view.Loading = false
	view.UpdatedAt = s.now()
	if err != nil {
		view.Reports = nil
		view.Error = ErrorMessage(err)
		metrics.SpeedTestAnalysesTotal.WithLabelValues(`failure`).Inc()
		entry.WithError(err).WithField(`url`, view.URL).Error(`analysis failed`)
		return
	}

	view.Reports = reports
	view.Error = ``
	view.Device = models.DeviceMobile
	metrics.SpeedTestAnalysesTotal.WithLabelValues(`success`).Inc()
	entry.WithField(`url`, view.URL).Info(`analysis complete`)
}

// ErrorMessage maps a failed fetch to the message shown to the user.
func ErrorMessage(err error) string {
	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		return `Error: ` + err.Error()
	}

	switch fetchErr.Kind {
	case models.FetchErrorResponse:
		if fetchErr.Detail != `` {
			return `Error: ` + fetchErr.Detail
		}
		return `Error: ` + msgDefaultResponse
	case models.FetchErrorNoResponse:
		return msgNoResponse
	default:
		return `Error: ` + fetchErr.Error()
	}
}
