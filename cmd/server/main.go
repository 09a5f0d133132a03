package main

import (
	"fmt"
	"os"
	"os/signal"
	"staffdir/internal/app"
	"staffdir/internal/handlers"
	"staffdir/internal/logger"
	"syscall"

	"github.com/gofiber/fiber/v2"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}

	fiberApp := fiber.New(fiber.Config{
		AppName: "staffdir",
		// Image uploads arrive fully buffered, so the body limit bounds them.
		BodyLimit: application.Config.UploadLimitBytes,
	})

	fiberApp.Use(application.Middleware.Recover())
	fiberApp.Use(application.Middleware.Cors())

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		if err := fiberApp.Listen(address); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := fiberApp.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
	if err := application.Close(); err != nil {
		log.Er("failed to close application", err)
	}
}
