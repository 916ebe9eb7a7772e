package middleware

import (
	"errors"
	"log"

	"log-journal-system/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler turns errors that escape a handler, or that fiber raises
// before one runs, into the API's JSON error shapes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		fe   *fiber.Error
		verr *service.ValidationError
		serr *service.StorageError
	)

	switch {
	case errors.As(err, &fe):
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"msg": "File too large",
			})
		}
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": verr.Msg,
		})
	case errors.As(err, &serr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": serr.Error(),
		})
	}

	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// NoStore marks API responses as uncacheable; every list is a fresh read.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
