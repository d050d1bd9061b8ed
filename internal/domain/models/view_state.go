package models

import "time"

// ViewState is the state of one browser tab. It lives in process memory
// only and is discarded once the view goes idle.
type ViewState struct {
	ID        string            `json:"id"`
	URL       string            `json:"url"`
	Reports   *SpeedTestReports `json:"reports,omitempty"`
	Loading   bool              `json:"loading"`
	Error     string            `json:"error,omitempty"`
	Device    Device            `json:"device"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// HasReports reports whether a fetched result is held.
func (s ViewState) HasReports() bool {
	return s.Reports != nil
}

// SelectedReport returns the half of the held result that is displayed.
func (s ViewState) SelectedReport() *LighthouseReport {
	return s.Reports.For(s.Device)
}
