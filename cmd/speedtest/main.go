// Command speedtest runs one analysis against the speed test backend and
// prints the mobile and desktop reports to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"website_speed_test/internal/adaptors"
	"website_speed_test/internal/domain/models"
	"website_speed_test/internal/service"
	"website_speed_test/internal/view"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

const spinner = `{{ cycle . "⠋" "⠙" "⠹" "⠸" "⠼" "⠴" "⠦" "⠧" "⠇" "⠏" }} Analyzing... this may take a minute {{ etime . }}`

func main() {
	apiURL := flag.String("api", envOr("SPEEDTEST_API_URL", "http://localhost:8000"), "base URL of the analysis backend")
	device := flag.String("device", "both", "report to print: mobile, desktop or both")
	timeout := flag.Duration("timeout", 2*time.Minute, "how long to wait for the analysis")
	verbose := flag.Bool("v", false, "log outbound requests to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: speedtest [flags] <url>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	devices, err := devicesFor(*device)
	if err != nil {
		color.Red("%v", err)
		os.Exit(2)
	}

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.PanicLevel)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := adaptors.NewSpeedTestClient(*apiURL, *timeout, logger)

	bar := pb.ProgressBarTemplate(spinner).Start(0)
	reports, err := client.Fetch(ctx, flag.Arg(0))
	bar.Finish()
	if err != nil {
		color.Red("%s", service.ErrorMessage(err))
		os.Exit(1)
	}

	for _, d := range devices {
		view.PrintReport(color.Output, view.NewReportPanels(reports.For(d), d))
	}
}

func devicesFor(name string) ([]models.Device, error) {
	if name == "both" {
		return []models.Device{models.DeviceMobile, models.DeviceDesktop}, nil
	}
	d, ok := models.ParseDevice(name)
	if !ok {
		return nil, fmt.Errorf("unknown device %q: want mobile, desktop or both", name)
	}
	return []models.Device{d}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
