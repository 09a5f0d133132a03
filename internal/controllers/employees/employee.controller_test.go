package employeeController

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"staffdir/config"
	"staffdir/internal/database"
	"staffdir/internal/events"
	"staffdir/internal/repositories"
	"staffdir/internal/services"

	. "staffdir/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func newTestController(t *testing.T) *EmployeeController {
	t.Helper()

	cfg := config.Config{DatabaseDbPath: ":memory:"}

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

	return New(eventBus, repo, txService, cfg)
}

func createPayload() EmployeePayload {
	return EmployeePayload{
		UniqueID:    stringPtr("EMP-100"),
		Name:        stringPtr("Jane Doe"),
		Email:       stringPtr("jane@example.com"),
		MobileNo:    stringPtr("1234567890"),
		Designation: stringPtr("Developer"),
		Gender:      stringPtr(GenderFemale),
		Course:      stringPtr("MCA"),
	}
}

func TestCreate_Success(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	imageBytes := []byte("fake image bytes")
	employee, err := controller.Create(ctx, createPayload(), imageBytes)
	require.NoError(t, err)

	assert.NotEmpty(t, employee.ID)
	assert.False(t, employee.CreatedAt.IsZero())
	assert.Equal(t, "Jane Doe", employee.Name)
	assert.Equal(t, base64.StdEncoding.EncodeToString(imageBytes), employee.Image)

	stored, err := controller.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreate_ValidationFailureWritesNothing(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, EmployeePayload{}, nil)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Violations, 6)

	stored, err := controller.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCreate_WithoutImage(t *testing.T) {
	controller := newTestController(t)

	employee, err := controller.Create(context.Background(), createPayload(), nil)
	require.NoError(t, err)
	assert.Empty(t, employee.Image)
}

func TestUpdate_MergesOnlySuppliedFields(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	created, err := controller.Create(ctx, createPayload(), []byte("photo"))
	require.NoError(t, err)

	// gender, designation, course, and image are all omitted here; update
	// mode relaxes them and the stored values must survive.
	updated, err := controller.Update(ctx, created.ID, EmployeePayload{
		Name:     stringPtr("Jane Smith"),
		Email:    stringPtr("jane.smith@example.com"),
		MobileNo: stringPtr("0987654321"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, "jane.smith@example.com", updated.Email)
	assert.Equal(t, "0987654321", updated.MobileNo)
	assert.Equal(t, "Developer", updated.Designation)
	assert.Equal(t, GenderFemale, updated.Gender)
	assert.Equal(t, "MCA", updated.Course)
	assert.Equal(t, created.Image, updated.Image)
}

func TestUpdate_ValidationFailure(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	created, err := controller.Create(ctx, createPayload(), nil)
	require.NoError(t, err)

	_, err = controller.Update(ctx, created.ID, EmployeePayload{
		Name:     stringPtr("Jane Doe"),
		Email:    stringPtr("jane@example.com"),
		MobileNo: stringPtr("12345"),
	}, nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "mobileNo", validationErr.Violations[0].Field)
}

func TestUpdate_NotFound(t *testing.T) {
	controller := newTestController(t)

	_, err := controller.Update(context.Background(), uuid.NewString(), EmployeePayload{
		Name:     stringPtr("Jane Doe"),
		Email:    stringPtr("jane@example.com"),
		MobileNo: stringPtr("1234567890"),
	}, nil)

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDelete_RepeatedDeleteReportsNotFound(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	created, err := controller.Create(ctx, createPayload(), nil)
	require.NoError(t, err)

	require.NoError(t, controller.Delete(ctx, created.ID))
	assert.ErrorIs(t, controller.Delete(ctx, created.ID), ErrEmployeeNotFound)
}

func TestDelete_UnknownIDLeavesStoreUnchanged(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, createPayload(), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, controller.Delete(ctx, uuid.NewString()), ErrEmployeeNotFound)

	stored, err := controller.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
