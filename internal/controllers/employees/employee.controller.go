package employeeController

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"staffdir/config"
	"staffdir/internal/events"
	"staffdir/internal/logger"
	"staffdir/internal/repositories"
	"staffdir/internal/services"
	"staffdir/internal/validation"
	"time"

	. "staffdir/internal/models"

	"github.com/google/uuid"
)

type EmployeeController struct {
	employeeRepo repositories.EmployeeRepository
	txService    *services.TransactionService
	eventBus     *events.EventBus
	Config       config.Config
	log          logger.Logger
}

func New(
	eventBus *events.EventBus,
	employeeRepo repositories.EmployeeRepository,
	txService *services.TransactionService,
	config config.Config,
) *EmployeeController {
	return &EmployeeController{
		employeeRepo: employeeRepo,
		txService:    txService,
		eventBus:     eventBus,
		Config:       config,
		log:          logger.New("EmployeeController"),
	}
}

// List returns every record in the store. Ordering is a client concern.
func (c *EmployeeController) List(ctx context.Context) ([]*Employee, error) {
	employees, err := c.employeeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return employees, nil
}

// Create encodes the optional image attachment into the payload, validates it
// in create mode, and inserts the record. Nothing is written when validation
// fails.
func (c *EmployeeController) Create(
	ctx context.Context,
	payload EmployeePayload,
	imageBytes []byte,
) (*Employee, error) {
	log := c.log.Function("Create")

	encodeImage(&payload, imageBytes)

	if violations := validation.Validate(payload, validation.ModeCreate); len(violations) > 0 {
		return nil, NewValidationError(violations)
	}

	employee := &Employee{
		UniqueID:    stringValue(payload.UniqueID),
		Name:        stringValue(payload.Name),
		Email:       stringValue(payload.Email),
		MobileNo:    stringValue(payload.MobileNo),
		Designation: stringValue(payload.Designation),
		Gender:      stringValue(payload.Gender),
		Course:      stringValue(payload.Course),
		Image:       stringValue(payload.Image),
	}

	if err := c.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	c.publish("created", employee.ID, employee)
	log.Info("employee created", "employeeID", employee.ID, "uniqueId", employee.UniqueID)

	return employee, nil
}

// Update merges the supplied fields into the stored record. Fields omitted
// from the payload keep their stored values; id and createdAt are never
// touched. The fetch and save share one transaction.
func (c *EmployeeController) Update(
	ctx context.Context,
	id string,
	payload EmployeePayload,
	imageBytes []byte,
) (*Employee, error) {
	log := c.log.Function("Update")

	encodeImage(&payload, imageBytes)

	if violations := validation.Validate(payload, validation.ModeUpdate); len(violations) > 0 {
		return nil, NewValidationError(violations)
	}

	var updated *Employee
	err := c.txService.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := c.employeeRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		applyPayload(existing, payload)

		if err := c.employeeRepo.Update(txCtx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	c.publish("updated", updated.ID, updated)
	log.Info("employee updated", "employeeID", updated.ID)

	return updated, nil
}

// Delete removes the record. Repeated deletes of a gone id keep reporting
// not found.
func (c *EmployeeController) Delete(ctx context.Context, id string) error {
	log := c.log.Function("Delete")

	if err := c.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	c.publish("deleted", id, nil)
	log.Info("employee deleted", "employeeID", id)

	return nil
}

// publish announces a mutation on the employees channel. Event delivery is
// best effort and never fails the request.
func (c *EmployeeController) publish(action, id string, employee *Employee) {
	data := map[string]any{"action": action, "employeeID": id}
	if employee != nil {
		data["employee"] = employee
	}

	event := events.Event{
		ID:        uuid.New().String(),
		Type:      "employee",
		Channel:   events.ChannelEmployees,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	if err := c.eventBus.Publish(events.ChannelEmployees, event); err != nil {
		c.log.Function("publish").Er("failed to publish employee event", err, "action", action)
	}
}

// encodeImage stores the uploaded bytes in the payload as base64 text before
// validation runs, the same order the upload middleware applied them.
func encodeImage(payload *EmployeePayload, imageBytes []byte) {
	if len(imageBytes) == 0 {
		return
	}
	encoded := base64.StdEncoding.EncodeToString(imageBytes)
	payload.Image = &encoded
}

func applyPayload(employee *Employee, payload EmployeePayload) {
	if payload.UniqueID != nil {
		employee.UniqueID = *payload.UniqueID
	}
	if payload.Name != nil {
		employee.Name = *payload.Name
	}
	if payload.Email != nil {
		employee.Email = *payload.Email
	}
	if payload.MobileNo != nil {
		employee.MobileNo = *payload.MobileNo
	}
	if payload.Designation != nil {
		employee.Designation = *payload.Designation
	}
	if payload.Gender != nil {
		employee.Gender = *payload.Gender
	}
	if payload.Course != nil {
		employee.Course = *payload.Course
	}
	if payload.Image != nil {
		employee.Image = *payload.Image
	}
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
