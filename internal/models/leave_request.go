package models

import "time"

// LeaveRequest is an employee's leave application.
type LeaveRequest struct {
	ID           int64     `db:"request_id" json:"requestId"`
	EmpID        string    `db:"emp_id" json:"empId"`
	EmpName      string    `db:"emp_name" json:"empName"`
	LeaveType    string    `db:"leave_type" json:"leaveType"`
	StartDate    Date      `db:"start_date" json:"startDate"`
	EndDate      Date      `db:"end_date" json:"endDate"`
	Reason       *string   `db:"reason" json:"reason,omitempty"`
	Status       string    `db:"status" json:"status"`
	ApproverName *string   `db:"approver_name" json:"approverName,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// LeaveSearchFilter narrows leave request listings. LeaveDate matches either end of the leave.
type LeaveSearchFilter struct {
	EmpID        string
	EmpName      string
	LeaveType    string
	LeaveDate    *Date
	Status       string
	ApproverName string
	RequestID    *int64
	Page         int
	PageSize     int
}
