package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/service"
)

// EmployeeHandler manages staff accounts under a trainer's tenancy.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

type createEmployeeRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type employeeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Create adds an employee login under the trainer.
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.employees.Create(c.Request().Context(), tenantID(c), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, employeeResponse{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
		Role:  created.Role,
	})
}

// List returns the trainer's active employees.
func (h *EmployeeHandler) List(c echo.Context) error {
	users, err := h.employees.List(c.Request().Context(), tenantID(c))
	if err != nil {
		return err
	}

	out := make([]employeeResponse, 0, len(users))
	for _, u := range users {
		out = append(out, employeeResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, out)
}

// Deactivate disables an employee login, keeping the row for the audit trail.
func (h *EmployeeHandler) Deactivate(c echo.Context) error {
	if err := h.employees.Deactivate(c.Request().Context(), c.Param("id"), tenantID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
