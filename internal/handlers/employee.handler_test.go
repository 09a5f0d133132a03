package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffdir/config"
	"staffdir/internal/app"
	employeeController "staffdir/internal/controllers/employees"
	"staffdir/internal/database"
	"staffdir/internal/events"
	"staffdir/internal/handlers/middleware"
	"staffdir/internal/repositories"
	"staffdir/internal/services"
	"staffdir/internal/websockets"

	. "staffdir/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Environment:      "test",
		DatabaseDbPath:   ":memory:",
		CorsAllowOrigins: "*",
		UploadLimitBytes: 4 * 1024 * 1024,
	}

	db := database.DB{}
	require.NoError(t, db.InitializeSQL(cfg))
	require.NoError(t, db.SQL.AutoMigrate(&Employee{}))
	t.Cleanup(func() {
		sqlDB, err := db.SQL.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	eventBus := events.New(nil, cfg)
	repo := repositories.New(db)
	txService := services.NewTransactionService(db)
	controller := employeeController.New(eventBus, repo, txService, cfg)

	websocket, err := websockets.New(db, eventBus, cfg)
	require.NoError(t, err)

	application := &app.App{
		Database:           db,
		Config:             cfg,
		Middleware:         middleware.New(cfg),
		EventBus:           eventBus,
		TransactionService: txService,
		EmployeeRepo:       repo,
		EmployeeController: controller,
		Websocket:          websocket,
	}

	fiberApp := fiber.New(fiber.Config{BodyLimit: cfg.UploadLimitBytes})
	require.NoError(t, Router(fiberApp, application))

	return fiberApp
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func validCreateFields() map[string]string {
	return map[string]string{
		"uniqueId":    "EMP-100",
		"name":        "Jane Doe",
		"email":       "jane@example.com",
		"mobileNo":    "1234567890",
		"designation": "Developer",
		"gender":      GenderFemale,
		"course":      "MCA",
	}
}

type employeeEnvelope struct {
	Message  string   `json:"message"`
	Employee Employee `json:"employee"`
}

type listEnvelope struct {
	Message   string     `json:"message"`
	Employees []Employee `json:"employees"`
}

type errorEnvelope struct {
	Message string      `json:"message"`
	Errors  []Violation `json:"errors"`
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func createEmployee(t *testing.T, server *fiber.App, fields map[string]string, image []byte) Employee {
	t.Helper()
	resp, err := server.Test(multipartRequest(t, http.MethodPost, "/create", fields, image))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[employeeEnvelope](t, resp).Employee
}

func TestCreateEmployee_Success(t *testing.T) {
	server := newTestServer(t)

	image := []byte("jpeg bytes")
	employee := createEmployee(t, server, validCreateFields(), image)

	assert.NotEmpty(t, employee.ID)
	assert.False(t, employee.CreatedAt.IsZero())
	assert.Equal(t, "EMP-100", employee.UniqueID)
	assert.Equal(t, "Jane Doe", employee.Name)
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), employee.Image)
}

func TestCreateEmployee_ValidationFailure(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Test(multipartRequest(t, http.MethodPost, "/create",
		map[string]string{"uniqueId": "EMP-100"}, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	envelope := decode[errorEnvelope](t, resp)
	assert.Len(t, envelope.Errors, 6)
	for _, violation := range envelope.Errors {
		assert.NotEmpty(t, violation.Message)
	}

	// Nothing may be written on validation failure.
	resp, err = server.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	assert.Empty(t, decode[listEnvelope](t, resp).Employees)
}

func TestCreateEmployee_NonMultipartBody(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/create",
		bytes.NewBufferString(`{"name":"Jane Doe"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListEmployees(t *testing.T) {
	server := newTestServer(t)

	createEmployee(t, server, validCreateFields(), nil)

	second := validCreateFields()
	second["uniqueId"] = "EMP-101"
	second["name"] = "Bob Fletcher"
	second["email"] = "bob@example.com"
	createEmployee(t, server, second, nil)

	resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decode[listEnvelope](t, resp)
	assert.Equal(t, "success", envelope.Message)
	assert.Len(t, envelope.Employees, 2)
}

func TestUpdateEmployee_PartialFields(t *testing.T) {
	server := newTestServer(t)

	created := createEmployee(t, server, validCreateFields(), nil)

	// designation/gender/course omitted: stored values must survive.
	resp, err := server.Test(multipartRequest(t, http.MethodPost, "/users/"+created.ID,
		map[string]string{
			"name":     "Jane Smith",
			"email":    "jane.smith@example.com",
			"mobileNo": "0987654321",
		}, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := decode[employeeEnvelope](t, resp).Employee
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, "Developer", updated.Designation)
	assert.Equal(t, GenderFemale, updated.Gender)
	assert.Equal(t, "MCA", updated.Course)
}

func TestUpdateEmployee_ValidationFailure(t *testing.T) {
	server := newTestServer(t)

	created := createEmployee(t, server, validCreateFields(), nil)

	resp, err := server.Test(multipartRequest(t, http.MethodPost, "/users/"+created.ID,
		map[string]string{
			"name":     "Jane Doe",
			"email":    "jane@example.com",
			"mobileNo": "12345",
		}, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	envelope := decode[errorEnvelope](t, resp)
	require.NotEmpty(t, envelope.Errors)
	assert.Equal(t, "Mobile number must be 10 digits long", envelope.Errors[0].Message)
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Test(multipartRequest(t, http.MethodPost, "/users/"+uuid.NewString(),
		map[string]string{
			"name":     "Jane Doe",
			"email":    "jane@example.com",
			"mobileNo": "1234567890",
		}, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteEmployee(t *testing.T) {
	server := newTestServer(t)

	created := createEmployee(t, server, validCreateFields(), nil)

	resp, err := server.Test(httptest.NewRequest(http.MethodDelete, "/users/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Deleting the same id again reports not found, never success.
	resp, err = server.Test(httptest.NewRequest(http.MethodDelete, "/users/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteEmployee_UnknownID(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Test(httptest.NewRequest(http.MethodDelete, "/users/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
