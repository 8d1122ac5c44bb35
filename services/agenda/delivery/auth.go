package delivery

import (
	"agendakids/config"
	"agendakids/domain"

	"github.com/gofiber/fiber/v2"
)

type authHandler struct {
	uc domain.AuthUseCase
}

// NewAuthHandler registers register/login. Neither route passes the
// identity middleware: these are the routes that mint identities.
func NewAuthHandler(app *fiber.App, useCase domain.AuthUseCase) {
	handler := &authHandler{
		uc: useCase,
	}

	route := app.Group("/auth")
	route.Post("/register", handler.Register)
	route.Post("/login", handler.Login)
}

func (ah *authHandler) Register(c *fiber.Ctx) error {
	actor := "anonymous"

	var req domain.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&actor, fiber.StatusBadRequest, "Register")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	resp, err := ah.uc.Register(c.Context(), &req)
	if err != nil {
		return translateError(c, err, actor, "Register")
	}

	config.PrintLogInfo(&resp.Name, fiber.StatusCreated, "Register")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully",
		"data":    resp,
	})
}

func (ah *authHandler) Login(c *fiber.Ctx) error {
	actor := "anonymous"

	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&actor, fiber.StatusBadRequest, "Login")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	resp, err := ah.uc.Login(c.Context(), &req)
	if err != nil {
		return translateError(c, err, actor, "Login")
	}

	config.PrintLogInfo(&resp.Name, fiber.StatusOK, "Login")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    resp,
	})
}
