package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/huc-prioritizer/internal/pkg/metrics"
)

// Metrics - счётчик и длительность запросов по шаблону маршрута
func Metrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// шаблон, а не фактический путь: иначе каждый session id - новая серия
		route := c.Route().Path
		collector.RecordAPIRequest(route, c.Method(), strconv.Itoa(c.Response().StatusCode()), time.Since(start))
		return err
	}
}
