package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"website_speed_test/internal/domain/models"
	"website_speed_test/internal/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type deviceTab struct {
	Device models.Device
	Label  string
	Active bool
}

type pageData struct {
	State  models.ViewState
	Report *ReportPanels
	Tabs   []deviceTab
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New(`speedtest`).Funcs(template.FuncMap{
		`inc`:               func(i int) int { return i + 1 },
		`incompleteMessage`: func() string { return IncompleteMessage },
	}).ParseFS(templateFS, `templates/*.tmpl`)
	if err != nil {
		return nil, errors.Wrap(err, `failed to parse templates`)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage writes the whole page for state. Nothing is written to w when
// rendering fails.
func (r *Renderer) RenderPage(w io.Writer, state models.ViewState) error {
	data := pageData{State: state}
	if state.HasReports() {
		panels := NewReportPanels(state.SelectedReport(), state.Device)
		data.Report = &panels
		for _, d := range []models.Device{models.DeviceMobile, models.DeviceDesktop} {
			data.Tabs = append(data.Tabs, deviceTab{Device: d, Label: d.Label(), Active: d == state.Device})
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, `page`, data); err != nil {
		return errors.Wrap(err, `failed to render page`)
	}
	_, err := buf.WriteTo(w)
	return err
}
