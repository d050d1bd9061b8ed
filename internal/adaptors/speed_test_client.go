package adaptors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"website_speed_test/internal/domain/models"
	"website_speed_test/internal/pkg/errors"
	"website_speed_test/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// inline base64 thumbnails make the reports large
const maxResponseBody = 64 << 20

type SpeedTestClient struct {
	baseURL string
	client  *http.Client
	log     *log.Logger
}

// NewSpeedTestClient returns a client for the analysis backend rooted at
// baseURL, e.g. http://localhost:8000.
func NewSpeedTestClient(baseURL string, timeout time.Duration, log *log.Logger) *SpeedTestClient {
	rTripper := promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, http.DefaultTransport))

	return &SpeedTestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: rTripper,
		},
		log: log,
	}
}

// Fetch runs one analysis of targetURL. Failures are always *models.FetchError.
func (c *SpeedTestClient) Fetch(ctx context.Context, targetURL string) (*models.SpeedTestReports, error) {
	endpoint, err := c.endpoint(targetURL)
	if err != nil {
		return nil, c.fail(targetURL, &models.FetchError{Kind: models.FetchErrorRequest, Cause: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.fail(targetURL, &models.FetchError{Kind: models.FetchErrorRequest, Cause: err})
	}
	req.Header.Set("Accept", "application/json")

	c.log.WithField(`url`, targetURL).Debug(`requesting speed test`)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.fail(targetURL, &models.FetchError{Kind: models.FetchErrorNoResponse, Cause: err})
	}
	defer resp.Body.Close()

	bodyByte, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, c.fail(targetURL, &models.FetchError{
			Kind:       models.FetchErrorRequest,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("failed to read response body: %w", err),
		})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.fail(targetURL, &models.FetchError{
			Kind:       models.FetchErrorResponse,
			StatusCode: resp.StatusCode,
			Detail:     responseDetail(bodyByte),
		})
	}

	var reports models.SpeedTestReports
	if err := json.Unmarshal(bodyByte, &reports); err != nil {
		return nil, c.fail(targetURL, &models.FetchError{
			Kind:       models.FetchErrorRequest,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("failed to decode response body: %w", err),
		})
	}

	return &reports, nil
}

func (c *SpeedTestClient) endpoint(targetURL string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid analysis backend url %q: %w", c.baseURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return "", fmt.Errorf("invalid analysis backend url %q", c.baseURL)
	}

	if base.Path == "" {
		base.Path = "/"
	}
	u := base.JoinPath("api", "speedtest")
	q := u.Query()
	q.Set("url", targetURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *SpeedTestClient) fail(targetURL string, fetchErr *models.FetchError) error {
	metrics.HTTPClientErrorsTotal.WithLabelValues(fetchErr.Kind.String()).Inc()
	c.log.WithError(errors.Wrap(fetchErr, `speed test request failed`)).WithFields(log.Fields{
		`url`:    targetURL,
		`kind`:   fetchErr.Kind.String(),
		`status`: fetchErr.StatusCode,
	}).Error(`speed test request failed`)
	return fetchErr
}

// responseDetail extracts the "detail" field of an error body. Strings are
// returned verbatim, other JSON values as their JSON text.
func responseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) == 0 || string(payload.Detail) == "null" {
		return ""
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}
	return string(payload.Detail)
}
