package delivery

import (
	"agendakids/config"
	"agendakids/domain"
	"agendakids/middleware"

	"github.com/gofiber/fiber/v2"
)

type reminderHandler struct {
	uc domain.ReminderUseCase
}

func NewReminderHandler(app *fiber.App, useCase domain.ReminderUseCase, resolver middleware.IdentityResolver) {
	handler := &reminderHandler{
		uc: useCase,
	}

	route := app.Group("/reminders", middleware.ParentRequired(resolver))
	route.Post("/dispatch", handler.Dispatch)
}

// Dispatch sends reminders for the caller's upcoming schedules.
func (rh *reminderHandler) Dispatch(c *fiber.Ctx) error {
	parentID := middleware.ParentID(c)
	actor := parentActor(parentID)

	result, err := rh.uc.Dispatch(c.Context(), parentID)
	if err != nil {
		return translateError(c, err, actor, "DispatchReminders")
	}

	config.PrintLogInfo(&actor, fiber.StatusOK, "DispatchReminders")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Reminders dispatched",
		"data":    result,
	})
}
