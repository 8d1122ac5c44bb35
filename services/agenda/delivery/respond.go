package delivery

import (
	"errors"
	"fmt"

	"agendakids/config"
	"agendakids/domain"

	"github.com/gofiber/fiber/v2"
)

// translateError maps a service error onto the HTTP taxonomy. Anything not
// recognized becomes a 500 with a generic body; the real cause only goes to
// the log.
func translateError(c *fiber.Ctx, err error, actor string, functionName string) error {
	var status int
	var message string

	ve, isValidation := domain.IsValidation(err)

	switch {
	case isValidation:
		status = fiber.StatusBadRequest
		message = ve.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
		message = "Record not found"
	case errors.Is(err, domain.ErrCPFRegistered):
		status = fiber.StatusConflict
		message = "CPF already registered"
	case errors.Is(err, domain.ErrEmailRegistered):
		status = fiber.StatusConflict
		message = "Email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
		message = "Invalid email or password"
	default:
		status = fiber.StatusInternalServerError
		message = "Something went wrong"
		config.GetLogrusInstance().Errorf("%s failed: %v", functionName, err)
	}

	config.PrintLogInfo(&actor, status, functionName)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func parentActor(parentID int) string {
	return fmt.Sprintf("parent:%d", parentID)
}
