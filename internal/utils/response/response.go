package response

import (
	"log"

	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, "Forbidden")
}

func ValidationError(c *fiber.Ctx, details []validation.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Invalid request data",
		"details": details,
	})
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	var de *apperr.DomainError
	if !apperr.As(err, &de) {
		return fiber.StatusInternalServerError
	}
	switch de.Kind {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindState:
		return fiber.StatusConflict
	case apperr.KindNotFound:
		if de.Code == apperr.ErrInvalidUser.Code {
			return fiber.StatusBadRequest
		}
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError writes err as {"error", "code"}. Persistence and unknown
// errors are logged and hidden behind a generic message.
func FromError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	var de *apperr.DomainError
	if status == fiber.StatusInternalServerError || !apperr.As(err, &de) {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
			"code":  apperr.ErrPersistenceFailure.Code,
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	})
}
