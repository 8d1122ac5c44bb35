package delivery

import (
	"agendakids/config"
	"agendakids/domain"
	"agendakids/middleware"

	"github.com/gofiber/fiber/v2"
)

type scheduleHandler struct {
	uc domain.ScheduleUseCase
}

func NewScheduleHandler(app *fiber.App, useCase domain.ScheduleUseCase, resolver middleware.IdentityResolver) {
	handler := &scheduleHandler{
		uc: useCase,
	}

	authed := middleware.ParentRequired(resolver)

	route := app.Group("/schedules", authed)
	route.Post("/", handler.CreateSchedule)
	route.Delete("/:id", handler.DeleteSchedule)

	app.Get("/children/:id/schedules", authed, handler.GetSchedulesByChild)
}

func (sh *scheduleHandler) CreateSchedule(c *fiber.Ctx) error {
	parentID := middleware.ParentID(c)
	actor := parentActor(parentID)

	var req domain.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&actor, fiber.StatusBadRequest, "CreateSchedule")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	schedule, err := sh.uc.CreateSchedule(c.Context(), &req, parentID)
	if err != nil {
		return translateError(c, err, actor, "CreateSchedule")
	}

	config.PrintLogInfo(&actor, fiber.StatusCreated, "CreateSchedule")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Schedule created successfully",
		"data":    schedule,
	})
}

func (sh *scheduleHandler) GetSchedulesByChild(c *fiber.Ctx) error {
	parentID := middleware.ParentID(c)
	actor := parentActor(parentID)

	childID, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(&actor, fiber.StatusBadRequest, "GetSchedulesByChild")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid child ID",
		})
	}

	schedules, err := sh.uc.GetSchedulesByChild(c.Context(), childID, parentID)
	if err != nil {
		return translateError(c, err, actor, "GetSchedulesByChild")
	}

	config.PrintLogInfo(&actor, fiber.StatusOK, "GetSchedulesByChild")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Schedules retrieved successfully",
		"data":    schedules,
	})
}

func (sh *scheduleHandler) DeleteSchedule(c *fiber.Ctx) error {
	parentID := middleware.ParentID(c)
	actor := parentActor(parentID)

	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(&actor, fiber.StatusBadRequest, "DeleteSchedule")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid schedule ID",
		})
	}

	if err := sh.uc.DeleteSchedule(c.Context(), id, parentID); err != nil {
		return translateError(c, err, actor, "DeleteSchedule")
	}

	config.PrintLogInfo(&actor, fiber.StatusOK, "DeleteSchedule")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Schedule deleted successfully",
	})
}
