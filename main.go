package main

import (
	"log"

	"event-ticketing/cmd"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/wire"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/queue"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// The broker is optional, ticket lifecycle events are simply not
	// published without it.
	var pub *queue.Publisher
	if config.Queue.URL != "" {
		pub, err = queue.NewPublisher(config.Queue.URL, logger)
		if err != nil {
			logger.Warn("Failed to connect to message broker, publishing disabled", zap.Error(err))
			pub = nil
		} else {
			defer pub.Close()
			logger.Info("Message broker connected")
		}
	}

	app := wire.Wiring(repos, config, pub, logger)

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
