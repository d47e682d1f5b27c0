package main

import (
	"smpid/internal/support/handler"
	"smpid/internal/support/repository"
	"smpid/internal/support/service"
	"smpid/internal/support/validator"
	"smpid/pkg/app"
	"smpid/pkg/config"
	"smpid/pkg/events"
)

const ServiceName = "support"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Support service")
	ticketService, publisher := initServices(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewTicketHandler(ticketService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.TicketService, events.Publisher) {
	publisher, err := events.ForConfig(cfg.KafkaBrokers, cfg.EventTopic, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}

	ticketValidator := validator.NewTicketValidator(cfg.Log)
	ticketRepo := repository.NewMongoTicketRepository(cfg)
	ticketService := service.NewTicketService(
		ticketRepo,
		ticketValidator,
		cfg,
		publisher,
	)

	cfg.Log.Info("Ticket service initialized", "database", cfg.MongoDatabaseName)
	return ticketService, publisher
}
