package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/services"
)

type UserHandler struct {
	accounts services.AccountService
}

func NewUserHandler(accounts services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// HandleRegister handles POST /users
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterUserRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	user := &models.UserRecord{
		ID:            req.ID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Role:          req.Role,
		Student:       req.Student,
		Teacher:       req.Teacher,
		Staff:         req.Staff,
		Administrator: req.Administrator,
	}
	if err := h.accounts.Register(c.UserContext(), user); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGet handles GET /users/:id
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.accounts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleList handles GET /users?role=
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.accounts.ListByRole(c.UserContext(), models.Role(c.Query("role", string(models.RoleStudent))))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

// HandleDelete handles DELETE /users/:id
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.accounts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
