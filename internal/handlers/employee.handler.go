package handlers

import (
	"errors"
	"io"
	"staffdir/internal/app"
	employeeController "staffdir/internal/controllers/employees"
	"staffdir/internal/logger"
	. "staffdir/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	Handler
	controller employeeController.EmployeeController
}

func NewEmployeeHandler(app app.App, router fiber.Router) *EmployeeHandler {
	log := logger.New("handlers").File("employee_handler")
	return &EmployeeHandler{
		controller: *app.EmployeeController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *EmployeeHandler) Register() {
	h.router.Get("/users", h.listEmployees)
	h.router.Post("/create", h.createEmployee)
	h.router.Post("/users/:id", h.updateEmployee)
	h.router.Delete("/users/:id", h.deleteEmployee)
}

func (h *EmployeeHandler) listEmployees(c *fiber.Ctx) error {
	log := h.log.Function("listEmployees")

	employees, err := h.controller.List(c.Context())
	if err != nil {
		log.Er("failed to list employees", err)
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(fiber.Map{"message": "failed to fetch employees"})
	}

	return c.JSON(fiber.Map{"message": "success", "employees": employees})
}

func (h *EmployeeHandler) createEmployee(c *fiber.Ctx) error {
	log := h.log.Function("createEmployee")

	payload, imageBytes, err := h.parseMultipart(c)
	if err != nil {
		log.Er("failed to parse create request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse multipart form"})
	}

	employee, err := h.controller.Create(c.Context(), payload, imageBytes)
	if err != nil {
		return h.writeError(c, err, "failed to create employee")
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "employee": employee})
}

func (h *EmployeeHandler) updateEmployee(c *fiber.Ctx) error {
	log := h.log.Function("updateEmployee")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "employee ID is required"})
	}

	payload, imageBytes, err := h.parseMultipart(c)
	if err != nil {
		log.Er("failed to parse update request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse multipart form"})
	}

	employee, err := h.controller.Update(c.Context(), id, payload, imageBytes)
	if err != nil {
		return h.writeError(c, err, "failed to update employee")
	}

	return c.JSON(fiber.Map{"message": "success", "employee": employee})
}

func (h *EmployeeHandler) deleteEmployee(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "employee ID is required"})
	}

	if err := h.controller.Delete(c.Context(), id); err != nil {
		return h.writeError(c, err, "failed to delete employee")
	}

	return c.JSON(fiber.Map{"message": "success"})
}

// parseMultipart reads the record form fields and the optional image file.
// Field presence is tracked through the form value map so an omitted field
// stays nil in the payload while an empty one does not.
func (h *EmployeeHandler) parseMultipart(c *fiber.Ctx) (EmployeePayload, []byte, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return EmployeePayload{}, nil, err
	}

	field := func(key string) *string {
		values, ok := form.Value[key]
		if !ok || len(values) == 0 {
			return nil
		}
		value := values[0]
		return &value
	}

	payload := EmployeePayload{
		UniqueID:    field("uniqueId"),
		Name:        field("name"),
		Email:       field("email"),
		MobileNo:    field("mobileNo"),
		Designation: field("designation"),
		Gender:      field("gender"),
		Course:      field("course"),
	}

	files := form.File["image"]
	if len(files) == 0 {
		return payload, nil, nil
	}

	// Attachment bytes are fully buffered before encoding.
	file, err := files[0].Open()
	if err != nil {
		return EmployeePayload{}, nil, err
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return EmployeePayload{}, nil, err
	}

	return payload, imageBytes, nil
}

func (h *EmployeeHandler) writeError(c *fiber.Ctx, err error, msg string) error {
	log := h.log.Function("writeError")

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"errors": validationErr.Violations})
	}

	if errors.Is(err, ErrEmployeeNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "employee not found"})
	}

	log.Er(msg, err)
	return c.Status(fiber.StatusServiceUnavailable).
		JSON(fiber.Map{"message": msg})
}
