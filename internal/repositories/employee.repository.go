package repositories

import (
	"context"
	"errors"
	"staffdir/internal/database"
	"staffdir/internal/logger"
	. "staffdir/internal/models"
	"staffdir/internal/services"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const EMPLOYEE_CACHE_EXPIRY = 1 * time.Hour

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetAll(ctx context.Context) ([]*Employee, error)
	Create(ctx context.Context, employee *Employee) error
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id string) error
}

type employeeRepository struct {
	db  database.DB
	log logger.Logger
}

func New(db database.DB) EmployeeRepository {
	return &employeeRepository{
		db:  db,
		log: logger.New("employeeRepository"),
	}
}

func (r *employeeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*Employee, error) {
	log := r.log.Function("GetByID")

	var employee Employee
	if found := r.getCacheByID(ctx, id, &employee); found {
		return &employee, nil
	}

	if err := r.getDBByID(ctx, id, &employee); err != nil {
		return nil, err
	}

	if err := r.addEmployeeToCache(ctx, &employee); err != nil {
		log.Warn("failed to add employee to cache", "employeeID", id, "error", err)
	}

	return &employee, nil
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]*Employee, error) {
	log := r.log.Function("GetAll")

	var employees []*Employee
	if err := r.getDB(ctx).Order("created_at").Find(&employees).Error; err != nil {
		return nil, log.Err("failed to get all employees", err)
	}

	return employees, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *Employee) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(employee).Error; err != nil {
		return log.Err("failed to create employee", err, "uniqueId", employee.UniqueID)
	}

	if err := r.addEmployeeToCache(ctx, employee); err != nil {
		log.Warn("failed to add employee to cache", "employeeID", employee.ID, "error", err)
	}

	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *Employee) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(employee).Error; err != nil {
		return log.Err("failed to update employee", err, "employeeID", employee.ID)
	}

	if err := r.addEmployeeToCache(ctx, employee); err != nil {
		log.Warn("failed to update employee in cache", "employeeID", employee.ID, "error", err)
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Employee{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete employee", result.Error, "id", id)
	}

	// Deleting an already-gone id reports not found, never success.
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	if err := database.NewCacheBuilder(r.db.Cache.Employee, id).Delete(); err != nil {
		log.Warn("failed to remove employee from cache", "employeeID", id, "error", err)
	}

	return nil
}

func (r *employeeRepository) getCacheByID(ctx context.Context, employeeID string, employee *Employee) bool {
	found, err := database.NewCacheBuilder(r.db.Cache.Employee, employeeID).
		WithContext(ctx).
		Get(employee)
	if err != nil {
		r.log.Function("getCacheByID").
			Warn("failed to get employee from cache", "employeeID", employeeID, "error", err)
		return false
	}
	return found
}

func (r *employeeRepository) addEmployeeToCache(ctx context.Context, employee *Employee) error {
	return database.NewCacheBuilder(r.db.Cache.Employee, employee.ID).
		WithStruct(employee).
		WithTTL(EMPLOYEE_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *employeeRepository) getDBByID(ctx context.Context, employeeID string, employee *Employee) error {
	log := r.log.Function("getDBByID")

	if _, err := uuid.Parse(employeeID); err != nil {
		log.Warn("employee id is not a valid UUID", "employeeID", employeeID)
		return ErrEmployeeNotFound
	}

	if err := r.getDB(ctx).First(employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return log.Err("failed to get employee by id", err, "id", employeeID)
	}

	return nil
}
