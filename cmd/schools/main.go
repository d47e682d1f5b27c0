package main

import (
	"smpid/internal/schools/handler"
	"smpid/internal/schools/repository"
	"smpid/internal/schools/service"
	"smpid/internal/schools/validator"
	"smpid/pkg/app"
	"smpid/pkg/config"
)

const ServiceName = "schools"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Schools service")
	schoolService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewSchoolHandler(schoolService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.SchoolService {
	schoolValidator := validator.NewSchoolValidator(cfg.Log)
	schoolRepo := repository.NewMongoSchoolRepository(cfg)
	schoolService := service.NewSchoolService(
		schoolRepo,
		schoolValidator,
		cfg,
	)

	cfg.Log.Info("School service initialized", "database", cfg.MongoDatabaseName)
	return schoolService
}
