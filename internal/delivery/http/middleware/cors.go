package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS для фронтенда карты; Content-Disposition открыт для скачивания выгрузок.
// С origins = "*" cookies не передаются: fiber не допускает credentials с wildcard.
func CORS(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language",
		ExposeHeaders:    "Content-Disposition",
		AllowCredentials: origins != "*",
	})
}
