package adaptors

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"website_speed_test/internal/domain/models"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RoundTripFunc lets us mock http.RoundTripper easily.
type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

const reportsJSON = `{
	"mobile": {
		"categories": {"performance": {"score": 0.93}, "seo": {"score": null}},
		"audits": {
			"first-contentful-paint": {"displayValue": "1.2 s"},
			"screenshot-thumbnails": {"details": {"items": [{"data": "data:image/jpeg;base64,AAAA"}]}}
		}
	},
	"desktop": {"categories": {"performance": {"score": 0.99}}, "audits": {}}
}`

func stubClient(rt RoundTripFunc) *SpeedTestClient {
	return &SpeedTestClient{
		baseURL: "http://backend.test",
		client:  &http.Client{Timeout: time.Second, Transport: rt},
		log:     log.New(),
	}
}

func respond(code int, body string) RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: code,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	}
}

func TestSpeedTestClient_FetchSuccess(t *testing.T) {
	type seen struct{ url, accept string }
	requests := make(chan seen, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- seen{url: r.URL.String(), accept: r.Header.Get("Accept")}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reportsJSON))
	}))
	defer server.Close()

	client := NewSpeedTestClient(server.URL, time.Second, log.New())
	reports, err := client.Fetch(context.Background(), "https://example.com/a?b=c")
	require.NoError(t, err)

	require.Len(t, requests, 1)
	got := <-requests
	assert.Equal(t, "/api/speedtest?url=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc", got.url)
	assert.Equal(t, "application/json", got.accept)

	require.NotNil(t, reports.Mobile)
	assert.InDelta(t, 0.93, reports.Mobile.Categories.Performance.Value(), 1e-9)
	assert.Equal(t, float64(0), reports.Mobile.Categories.SEO.Value())
	assert.Nil(t, reports.Mobile.Categories.Accessibility)
	assert.Equal(t, "1.2 s", reports.Mobile.Audits.FirstContentfulPaint.Display("N/A"))
	assert.Equal(t, "N/A", reports.Mobile.Audits.SpeedIndex.Display("N/A"))
	assert.Len(t, reports.Mobile.Audits.Thumbnails(), 1)
	require.NotNil(t, reports.Desktop)
	assert.Empty(t, reports.Desktop.Audits.Thumbnails())
}

func TestSpeedTestClient_FetchErrors(t *testing.T) {
	cases := []struct {
		name       string
		client     *SpeedTestClient
		wantKind   models.FetchErrorKind
		wantStatus int
		wantDetail string
	}{
		{
			name:       "error status with string detail",
			client:     stubClient(respond(http.StatusBadRequest, `{"detail": "Invalid URL provided"}`)),
			wantKind:   models.FetchErrorResponse,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid URL provided",
		},
		{
			name:       "error status with structured detail",
			client:     stubClient(respond(http.StatusUnprocessableEntity, `{"detail": [{"msg": "field required"}]}`)),
			wantKind:   models.FetchErrorResponse,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: `[{"msg": "field required"}]`,
		},
		{
			name:       "error status without json body",
			client:     stubClient(respond(http.StatusBadGateway, `<html>bad gateway</html>`)),
			wantKind:   models.FetchErrorResponse,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "error status with null detail",
			client:     stubClient(respond(http.StatusInternalServerError, `{"detail": null}`)),
			wantKind:   models.FetchErrorResponse,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "network error",
			client: stubClient(func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			}),
			wantKind: models.FetchErrorNoResponse,
		},
		{
			name: "invalid backend url",
			client: &SpeedTestClient{
				baseURL: "localhost:8000",
				client:  http.DefaultClient,
				log:     log.New(),
			},
			wantKind: models.FetchErrorRequest,
		},
		{
			name:       "malformed success body",
			client:     stubClient(respond(http.StatusOK, `not json`)),
			wantKind:   models.FetchErrorRequest,
			wantStatus: http.StatusOK,
		},
		{
			name: "read body error",
			client: stubClient(func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       errReadCloser{},
					Header:     make(http.Header),
				}, nil
			}),
			wantKind:   models.FetchErrorRequest,
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reports, err := tc.client.Fetch(context.Background(), "https://example.com")
			require.Error(t, err)
			assert.Nil(t, reports)

			var fetchErr *models.FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, tc.wantKind, fetchErr.Kind)
			assert.Equal(t, tc.wantStatus, fetchErr.StatusCode)
			assert.Equal(t, tc.wantDetail, fetchErr.Detail)
		})
	}
}

func TestSpeedTestClient_EndpointKeepsBasePath(t *testing.T) {
	client := &SpeedTestClient{baseURL: "https://speed.example.org/backend/", log: log.New()}

	endpoint, err := client.endpoint("example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://speed.example.org/backend/api/speedtest?url=example.com", endpoint)
}

// errReadCloser is an io.ReadCloser that always errors on Read.
type errReadCloser struct{}

func (e errReadCloser) Read(p []byte) (int, error) {
	return 0, errors.New("read failed")
}
func (e errReadCloser) Close() error {
	return nil
}
