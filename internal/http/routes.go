package http

import (
	"context"

	"website_speed_test/internal/http/handlers"
	"website_speed_test/internal/http/middleware"
)

func initRoutes(_ context.Context, r *Router) {
	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))

	page := handlers.NewSpeedTestPageHandler(r.tester, r.renderer, r.log)

	// Routes
	r.httpRouter.Get("/ready", handlers.NewReadyHandler().Handle)
	r.httpRouter.Get("/", page.Home)
	r.httpRouter.Get("/views/{id}", page.Show)
	r.httpRouter.Post("/views/{id}/analyze", page.Submit)
	r.httpRouter.Post("/views/{id}/device", page.SelectDevice)
	r.httpRouter.Get("/api/views/{id}", handlers.NewViewStateHandler(r.tester, r.log).Handle)
}
