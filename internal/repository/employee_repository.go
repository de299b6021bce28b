package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/leave-alteration-api/internal/models"
)

// EmployeeRepository reads employee records.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// GetByEmpID fetches an employee by business identifier.
func (r *EmployeeRepository) GetByEmpID(ctx context.Context, empID string) (*models.Employee, error) {
	const query = `SELECT emp_id, emp_name, email, active FROM employees WHERE emp_id = $1`
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, empID); err != nil {
		return nil, err
	}
	return &employee, nil
}
