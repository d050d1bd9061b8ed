package view

import (
	"html/template"
	"testing"

	"website_speed_test/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *models.Category {
	return &models.Category{Score: &v}
}

func display(v string) *models.Audit {
	return &models.Audit{DisplayValue: &v}
}

func fullReport() *models.LighthouseReport {
	return &models.LighthouseReport{
		Categories: &models.Categories{
			Performance:   score(0.93),
			Accessibility: score(0.5),
			BestPractices: score(0.42),
			SEO:           &models.Category{},
		},
		Audits: &models.Audits{
			FirstContentfulPaint:   display("1.2 s"),
			LargestContentfulPaint: display("2.5 s"),
			Interactive:            display("3.1 s"),
			TotalBlockingTime:      display("120 ms"),
			CumulativeLayoutShift:  display("0.01"),
			SpeedIndex:             display("1.9 s"),
			ServerResponseTime:     display("Root document took 80 ms"),
			ScreenshotThumbnails: &models.ThumbnailsAudit{Details: &models.ThumbnailDetails{Items: []models.Thumbnail{
				{Data: "data:image/jpeg;base64,/9j/AAAA"},
				{Data: "javascript:alert(1)"},
				{Data: "https://cdn.example.com/frame.jpg"},
			}}},
		},
	}
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		percent  float64
		expected string
	}{
		{percent: 100, expected: "text-green-500"},
		{percent: 90, expected: "text-green-500"},
		{percent: 89.9, expected: "text-yellow-500"},
		{percent: 50, expected: "text-yellow-500"},
		{percent: 49.9, expected: "text-red-500"},
		{percent: 0, expected: "text-red-500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScoreColor(tt.percent), "percent %v", tt.percent)
	}
}

func TestNewReportPanels(t *testing.T) {
	panels := NewReportPanels(fullReport(), models.DeviceDesktop)

	assert.Equal(t, "Desktop", panels.Device)
	assert.False(t, panels.Incomplete)

	assert.Equal(t, []ScorePanel{
		{Title: "Performance", Percent: 93, Value: 93, Color: "text-green-500"},
		{Title: "Accessibility", Percent: 50, Value: 50, Color: "text-yellow-500"},
		{Title: "Best Practices", Percent: 42, Value: 42, Color: "text-red-500"},
		{Title: "SEO", Percent: 0, Value: 0, Color: "text-red-500"},
	}, roundPercents(panels.Scores))

	require.Len(t, panels.Metrics, 7)
	assert.Equal(t, MetricPanel{Title: "First Contentful Paint", Value: "1.2 s"}, panels.Metrics[0])
	assert.Equal(t, MetricPanel{Title: "Server Response Time", Value: "Root document took 80 ms"}, panels.Metrics[6])

	assert.Equal(t, []template.URL{
		"data:image/jpeg;base64,/9j/AAAA",
		"https://cdn.example.com/frame.jpg",
	}, panels.Thumbnails)
}

func TestNewReportPanels_RoundsScores(t *testing.T) {
	report := fullReport()
	report.Categories.Performance = score(0.874)
	report.Categories.SEO = score(0.996)

	panels := NewReportPanels(report, models.DeviceMobile)
	assert.Equal(t, 87, panels.Scores[0].Value)
	assert.Equal(t, "text-yellow-500", panels.Scores[0].Color)
	assert.Equal(t, 100, panels.Scores[3].Value)
	assert.Equal(t, "text-green-500", panels.Scores[3].Color)
}

func TestNewReportPanels_MissingAudits(t *testing.T) {
	report := fullReport()
	report.Audits = &models.Audits{
		SpeedIndex:           display("4.0 s"),
		ScreenshotThumbnails: &models.ThumbnailsAudit{},
	}

	panels := NewReportPanels(report, models.DeviceMobile)
	require.Len(t, panels.Metrics, 7)
	for _, m := range panels.Metrics {
		if m.Title == "Speed Index" {
			assert.Equal(t, "4.0 s", m.Value)
			continue
		}
		assert.Equal(t, NotAvailable, m.Value, m.Title)
	}
	assert.Empty(t, panels.Thumbnails)
}

func TestNewReportPanels_Incomplete(t *testing.T) {
	tests := []struct {
		name   string
		report *models.LighthouseReport
	}{
		{name: "nil report", report: nil},
		{name: "no categories", report: &models.LighthouseReport{Audits: &models.Audits{}}},
		{name: "no audits", report: &models.LighthouseReport{Categories: &models.Categories{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panels := NewReportPanels(tt.report, models.DeviceMobile)
			assert.True(t, panels.Incomplete)
			assert.Empty(t, panels.Scores)
			assert.Empty(t, panels.Metrics)
			assert.Equal(t, "Mobile", panels.Device)
		})
	}
}

// roundPercents removes float noise from score*100 so panels compare exactly.
func roundPercents(scores []ScorePanel) []ScorePanel {
	out := make([]ScorePanel, len(scores))
	for i, s := range scores {
		s.Percent = float64(s.Value)
		out[i] = s
	}
	return out
}
