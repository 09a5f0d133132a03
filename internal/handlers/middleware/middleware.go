package middleware

import (
	"staffdir/config"
	"staffdir/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Middleware struct {
	config config.Config
	log    logger.Logger
}

func New(config config.Config) Middleware {
	return Middleware{
		config: config,
		log:    logger.New("middleware"),
	}
}

func (m Middleware) Cors() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.config.CorsAllowOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}

func (m Middleware) Recover() fiber.Handler {
	return recover.New()
}
