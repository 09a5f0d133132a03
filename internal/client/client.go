// Package client is the browser-side API surface: it talks to the directory
// server and hands the raw record set to listview for display.
package client

import (
	"encoding/json"
	"fmt"
	"staffdir/internal/logger"
	"time"

	. "staffdir/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FormMode tells the create/edit form which mode to render. It is passed
// explicitly at construction time instead of living in process-wide state,
// so a stale hint can never survive across unrelated navigations.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// FormParams configures one instance of the employee form.
type FormParams struct {
	Mode    FormMode
	Initial *Employee
}

type Client struct {
	baseURL string
	timeout time.Duration
	log     logger.Logger
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: 10 * time.Second,
		log:     logger.New("client"),
	}
}

type listResponse struct {
	Message   string      `json:"message"`
	Employees []*Employee `json:"employees"`
}

type employeeResponse struct {
	Message  string    `json:"message"`
	Employee *Employee `json:"employee"`
}

type errorResponse struct {
	Message string      `json:"message"`
	Errors  []Violation `json:"errors"`
}

func (c *Client) FetchEmployees() ([]*Employee, error) {
	log := c.log.Function("FetchEmployees")

	agent := fiber.Get(c.baseURL + "/users").Timeout(c.timeout)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, log.Err("failed to fetch employees", errs[0])
	}
	if code != fiber.StatusOK {
		return nil, decodeError(code, body)
	}

	var response listResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, log.Err("failed to decode employee list", err)
	}

	return response.Employees, nil
}

func (c *Client) CreateEmployee(payload EmployeePayload, image []byte, imageName string) (*Employee, error) {
	return c.submit(c.baseURL+"/create", fiber.StatusCreated, payload, image, imageName)
}

func (c *Client) UpdateEmployee(id string, payload EmployeePayload, image []byte, imageName string) (*Employee, error) {
	return c.submit(c.baseURL+"/users/"+id, fiber.StatusOK, payload, image, imageName)
}

// SaveEmployee submits the form according to its explicit mode.
func (c *Client) SaveEmployee(form FormParams, payload EmployeePayload, image []byte, imageName string) (*Employee, error) {
	if form.Mode == FormEdit {
		if form.Initial == nil {
			return nil, c.log.Function("SaveEmployee").ErrMsg("edit form requires an initial record")
		}
		return c.UpdateEmployee(form.Initial.ID, payload, image, imageName)
	}
	return c.CreateEmployee(payload, image, imageName)
}

func (c *Client) DeleteEmployee(id string) error {
	log := c.log.Function("DeleteEmployee")

	agent := fiber.Delete(c.baseURL + "/users/" + id).Timeout(c.timeout)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return log.Err("failed to delete employee", errs[0], "id", id)
	}
	if code != fiber.StatusOK {
		return decodeError(code, body)
	}

	return nil
}

func (c *Client) submit(url string, wantStatus int, payload EmployeePayload, image []byte, imageName string) (*Employee, error) {
	log := c.log.Function("submit")

	agent := fiber.Post(url).Timeout(c.timeout)

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	setField(args, "uniqueId", payload.UniqueID)
	setField(args, "name", payload.Name)
	setField(args, "email", payload.Email)
	setField(args, "mobileNo", payload.MobileNo)
	setField(args, "designation", payload.Designation)
	setField(args, "gender", payload.Gender)
	setField(args, "course", payload.Course)

	if len(image) > 0 {
		agent.FileData(&fiber.FormFile{
			Fieldname: "image",
			Name:      imageName,
			Content:   image,
		})
	}
	agent.MultipartForm(args)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, log.Err("request failed", errs[0], "url", url)
	}
	if code != wantStatus {
		return nil, decodeError(code, body)
	}

	var response employeeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, log.Err("failed to decode employee response", err)
	}

	return response.Employee, nil
}

func setField(args *fiber.Args, key string, value *string) {
	if value != nil {
		args.Set(key, *value)
	}
}

func decodeError(code int, body []byte) error {
	var response errorResponse
	_ = json.Unmarshal(body, &response)

	switch code {
	case fiber.StatusBadRequest:
		if len(response.Errors) > 0 {
			return NewValidationError(response.Errors)
		}
		return fmt.Errorf("bad request: %s", response.Message)
	case fiber.StatusNotFound:
		return ErrEmployeeNotFound
	default:
		return fmt.Errorf("%w: server returned %d: %s", ErrStoreUnavailable, code, response.Message)
	}
}
