package view

import (
	"html/template"
	"math"
	"net/url"
	"strings"

	"website_speed_test/internal/domain/models"
)

const (
	// NotAvailable replaces metric values missing from a report.
	NotAvailable = `N/A`
	// IncompleteMessage is shown instead of panels when a report lacks its
	// categories or audits.
	IncompleteMessage = `Report data is incomplete or unavailable.`
)

type band int

const (
	bandPoor band = iota
	bandAverage
	bandGood
)

func scoreBand(percent float64) band {
	switch {
	case percent >= 90:
		return bandGood
	case percent >= 50:
		return bandAverage
	default:
		return bandPoor
	}
}

// ScoreColor returns the CSS class of a score on the 0..100 scale.
func ScoreColor(percent float64) string {
	switch scoreBand(percent) {
	case bandGood:
		return `text-green-500`
	case bandAverage:
		return `text-yellow-500`
	default:
		return `text-red-500`
	}
}

type ScorePanel struct {
	Title string
	// Percent is the unrounded score on the 0..100 scale.
	Percent float64
	Value   int
	Color   string
}

type MetricPanel struct {
	Title string
	Value string
}

// ReportPanels is everything needed to draw one device report.
type ReportPanels struct {
	Device     string
	Incomplete bool
	Scores     []ScorePanel
	Metrics    []MetricPanel
	Thumbnails []template.URL
}

// NewReportPanels formats one half of an analysis result. It never fails:
// missing pieces become placeholders.
func NewReportPanels(report *models.LighthouseReport, device models.Device) ReportPanels {
	panels := ReportPanels{Device: device.Label()}
	if report == nil || report.Categories == nil || report.Audits == nil {
		panels.Incomplete = true
		return panels
	}

	c := report.Categories
	panels.Scores = []ScorePanel{
		newScorePanel(`Performance`, c.Performance),
		newScorePanel(`Accessibility`, c.Accessibility),
		newScorePanel(`Best Practices`, c.BestPractices),
		newScorePanel(`SEO`, c.SEO),
	}

	a := report.Audits
	panels.Metrics = []MetricPanel{
		{Title: `First Contentful Paint`, Value: a.FirstContentfulPaint.Display(NotAvailable)},
		{Title: `Largest Contentful Paint`, Value: a.LargestContentfulPaint.Display(NotAvailable)},
		{Title: `Time to Interactive`, Value: a.Interactive.Display(NotAvailable)},
		{Title: `Total Blocking Time`, Value: a.TotalBlockingTime.Display(NotAvailable)},
		{Title: `Cumulative Layout Shift`, Value: a.CumulativeLayoutShift.Display(NotAvailable)},
		{Title: `Speed Index`, Value: a.SpeedIndex.Display(NotAvailable)},
		{Title: `Server Response Time`, Value: a.ServerResponseTime.Display(NotAvailable)},
	}

	for _, thumb := range a.Thumbnails() {
		if src, ok := thumbnailSource(thumb.Data); ok {
			panels.Thumbnails = append(panels.Thumbnails, src)
		}
	}
	return panels
}

func newScorePanel(title string, category *models.Category) ScorePanel {
	percent := category.Value() * 100
	return ScorePanel{
		Title:   title,
		Percent: percent,
		Value:   int(math.Round(percent)),
		Color:   ScoreColor(percent),
	}
}

// thumbnailSource accepts inline images and http(s) links. Anything else
// would be rewritten to an unsafe placeholder by html/template, so it is
// dropped here.
func thumbnailSource(data string) (template.URL, bool) {
	if strings.HasPrefix(strings.ToLower(data), `data:image/`) {
		return template.URL(data), true
	}
	u, err := url.Parse(data)
	if err != nil || u.Host == `` || (u.Scheme != `http` && u.Scheme != `https`) {
		return ``, false
	}
	return template.URL(u.String()), true
}
