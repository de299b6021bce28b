package models

// Employee is a faculty or staff member; EmpID is the business identifier used across the API.
type Employee struct {
	EmpID   string  `db:"emp_id" json:"empId"`
	EmpName string  `db:"emp_name" json:"empName"`
	Email   *string `db:"email" json:"email,omitempty"`
	Active  bool    `db:"active" json:"active"`
}
