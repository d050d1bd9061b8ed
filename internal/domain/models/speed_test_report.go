package models

// Device selects which half of a SpeedTestReports is shown.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
)

// Label is the human readable device name used in headings.
func (d Device) Label() string {
	switch d {
	case DeviceDesktop:
		return "Desktop"
	case DeviceMobile:
		return "Mobile"
	default:
		return string(d)
	}
}

// ParseDevice returns the device named by s and whether it is known.
func ParseDevice(s string) (Device, bool) {
	switch Device(s) {
	case DeviceMobile:
		return DeviceMobile, true
	case DeviceDesktop:
		return DeviceDesktop, true
	}
	return "", false
}

// SpeedTestReports is the body returned by the analysis backend. Both halves
// are produced by the backend and are never modified here.
type SpeedTestReports struct {
	Mobile  *LighthouseReport `json:"mobile"`
	Desktop *LighthouseReport `json:"desktop"`
}

// For returns the report of the given device, nil when absent.
func (r *SpeedTestReports) For(device Device) *LighthouseReport {
	if r == nil {
		return nil
	}
	if device == DeviceDesktop {
		return r.Desktop
	}
	return r.Mobile
}

type LighthouseReport struct {
	Categories *Categories `json:"categories"`
	Audits     *Audits     `json:"audits"`
}

type Categories struct {
	Performance   *Category `json:"performance"`
	Accessibility *Category `json:"accessibility"`
	BestPractices *Category `json:"best-practices"`
	SEO           *Category `json:"seo"`
}

// Category carries a score in [0,1]; the backend sends null for categories
// it could not score.
type Category struct {
	Score *float64 `json:"score"`
}

// Value returns the score or 0 when the category or its score is missing.
func (c *Category) Value() float64 {
	if c == nil || c.Score == nil {
		return 0
	}
	return *c.Score
}

type Audits struct {
	FirstContentfulPaint   *Audit           `json:"first-contentful-paint"`
	LargestContentfulPaint *Audit           `json:"largest-contentful-paint"`
	Interactive            *Audit           `json:"interactive"`
	TotalBlockingTime      *Audit           `json:"total-blocking-time"`
	CumulativeLayoutShift  *Audit           `json:"cumulative-layout-shift"`
	SpeedIndex             *Audit           `json:"speed-index"`
	ServerResponseTime     *Audit           `json:"server-response-time"`
	ScreenshotThumbnails   *ThumbnailsAudit `json:"screenshot-thumbnails"`
}

type Audit struct {
	DisplayValue *string `json:"displayValue"`
}

// Display returns the pre-formatted value, or fallback when it is absent.
func (a *Audit) Display(fallback string) string {
	if a == nil || a.DisplayValue == nil {
		return fallback
	}
	return *a.DisplayValue
}

type ThumbnailsAudit struct {
	Details *ThumbnailDetails `json:"details"`
}

type ThumbnailDetails struct {
	Items []Thumbnail `json:"items"`
}

// Thumbnail is one frame of the page load filmstrip, usually an inline
// data:image/jpeg;base64 payload.
type Thumbnail struct {
	Data string `json:"data"`
}

// Thumbnails returns the filmstrip frames, nil when any level is missing.
func (a *Audits) Thumbnails() []Thumbnail {
	if a == nil || a.ScreenshotThumbnails == nil || a.ScreenshotThumbnails.Details == nil {
		return nil
	}
	return a.ScreenshotThumbnails.Details.Items
}
