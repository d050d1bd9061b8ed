package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"website_speed_test/internal/adaptors"
	"website_speed_test/internal/application/config"
	"website_speed_test/internal/pkg/errors"
	"website_speed_test/internal/pkg/worker_pool"
	"website_speed_test/internal/service"
	"website_speed_test/internal/view"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const sweepInterval = time.Minute

type Router struct {
	httpRouter *chi.Mux
	log        *log.Logger
	tester     *service.SpeedTester
	renderer   *view.Renderer
}

type stopper interface {
	Stop() error
}

// Init wires the application and serves until SIGINT/SIGTERM or until one
// of the listeners fails.
func Init(ctx context.Context, log *log.Logger, appCfg *config.AppConfig) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	cfg, err := NewHTTPServerConfig()
	if err != nil {
		return errors.Wrap(err, `failed to load http server config`)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	pool := worker_pool.NewWorkerPool(ctx, appCfg.SpeedTestWorkers, appCfg.SpeedTestWorkers*4, log)
	client := adaptors.NewSpeedTestClient(appCfg.SpeedTestAPIURL, appCfg.SpeedTestTimeout, log)
	tester := service.NewSpeedTester(log, client, pool, appCfg.ViewIdleTTL)

	router := &Router{
		httpRouter: chi.NewRouter(),
		log:        log,
		tester:     tester,
		renderer:   renderer,
	}
	initRoutes(ctx, router)

	g, gctx := errgroup.WithContext(ctx)

	servers := []stopper{}

	httpServer := NewHttpServer(ctx, cfg, router.httpRouter, log)
	g.Go(httpServer.Start)
	servers = append(servers, httpServer)

	metricsServer := NewMetricsServer(appCfg.MetricsHost, cfg.Timeouts.ShutdownWait, log)
	g.Go(metricsServer.Start)
	servers = append(servers, metricsServer)

	if appCfg.DebugMode {
		pprofServer := NewPprofServer(appCfg.PprofHost, cfg.Timeouts.ShutdownWait, log)
		g.Go(pprofServer.Start)
		servers = append(servers, pprofServer)
	}

	sweepCtx, stopSweep := context.WithCancel(gctx)
	go tester.Run(sweepCtx, sweepInterval)

	g.Go(func() error {
		select {
		case sig := <-sigs:
			log.WithField(`signal`, sig.String()).Info(`shutdown requested`)
		case <-gctx.Done():
			log.Warn(`listener failed, shutting down`)
		}

		stopSweep()
		var errs []error
		for _, s := range servers {
			errs = append(errs, s.Stop())
		}
		pool.Stop()
		return errors.Join(errs...)
	})

	return g.Wait()
}
