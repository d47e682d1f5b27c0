package main

import (
	"smpid/internal/dashboard/handler"
	"smpid/internal/dashboard/service"
	"smpid/pkg/app"
	"smpid/pkg/config"
)

const ServiceName = "dashboard"

// The dashboard owns no collections; it aggregates the other services over
// HTTP, so no Mongo client is set up.
func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Dashboard service",
		"bookings_url", cfg.BookingsURL,
		"schools_url", cfg.SchoolsURL,
		"support_url", cfg.SupportURL,
	)

	dashboardService := service.NewDashboardService(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewDashboardHandler(dashboardService, cfg.Log))
	serverApp.Run()
}
