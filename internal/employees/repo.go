package employees

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/internal/repo"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

// Repository handles employee persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to employee operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListWithDepartment returns employees joined with their department name,
// ordered by department id and then employee id within each.
func (r *Repository) ListWithDepartment(ctx context.Context, page pagination.Params, perPage int) ([]WithDepartment, error) {
	var rows []WithDepartment
	query := r.DB(ctx).
		Table("employees").
		Select("employees.*, departments.name AS department_name").
		Joins("JOIN departments ON departments.id = employees.department_id").
		Order("departments.id asc, employees.id asc")
	if page.Page > 0 {
		normalized := page.Normalized(perPage)
		query = query.Offset(normalized.Offset(perPage)).Limit(normalized.Limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find loads an employee by id.
func (r *Repository) Find(ctx context.Context, id int) (*models.Employee, error) {
	var row models.Employee
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// NextIDWithTx reserves the next employee id inside the transaction.
func (r *Repository) NextIDWithTx(tx *gorm.DB) (int, error) {
	return repo.NextID(tx, "employees", "employees_id_seq")
}

// CreateWithTx inserts the employee using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, row *models.Employee) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("employee is required")
	}
	return tx.Create(row).Error
}

// UpdateWithTx persists the employee using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, row *models.Employee) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("employee is required")
	}
	return tx.Save(row).Error
}
