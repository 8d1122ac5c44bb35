package delivery

import (
	"agendakids/config"
	"agendakids/domain"
	"agendakids/middleware"

	"github.com/gofiber/fiber/v2"
)

type childHandler struct {
	uc domain.ChildUseCase
}

func NewChildHandler(app *fiber.App, useCase domain.ChildUseCase, resolver middleware.IdentityResolver) {
	handler := &childHandler{
		uc: useCase,
	}

	route := app.Group("/children", middleware.ParentRequired(resolver))
	route.Post("/", handler.CreateChild)
	route.Get("/", handler.GetChildren)
	route.Delete("/:id", handler.DeleteChild)
}

func (ch *childHandler) CreateChild(c *fiber.Ctx) error {
	parentID := middleware.ParentID(c)
	actor := parentActor(parentID)

	var req domain.CreateChildRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&actor, fiber.StatusBadRequest, "CreateChild")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	child, err := ch.uc.CreateChild(c.Context(), &req, parentID)
	if err != nil {
		return translateError(c, err, actor, "CreateChild")
	}

	config.PrintLogInfo(&actor, fiber.StatusCreated, "CreateChild")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Child created successfully",
		"data": domain.CreateChildResponse{
			ID:       child.ID,
			FullName: child.FullName,
		},
	})
}

func (ch *childHandler) GetChildren(c *fiber.Ctx) error {
	parentID := middleware.ParentID(c)
	actor := parentActor(parentID)

	children, err := ch.uc.GetChildrenByParent(c.Context(), parentID)
	if err != nil {
		return translateError(c, err, actor, "GetChildren")
	}

	config.PrintLogInfo(&actor, fiber.StatusOK, "GetChildren")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Children retrieved successfully",
		"data":    children,
	})
}

func (ch *childHandler) DeleteChild(c *fiber.Ctx) error {
	parentID := middleware.ParentID(c)
	actor := parentActor(parentID)

	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(&actor, fiber.StatusBadRequest, "DeleteChild")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid child ID",
		})
	}

	if err := ch.uc.DeleteChild(c.Context(), id, parentID); err != nil {
		return translateError(c, err, actor, "DeleteChild")
	}

	config.PrintLogInfo(&actor, fiber.StatusOK, "DeleteChild")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Child deleted successfully",
	})
}
