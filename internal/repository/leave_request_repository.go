package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/leave-alteration-api/internal/models"
)

const leaveRequestSelect = `SELECT lr.request_id, lr.emp_id, e.emp_name, lr.leave_type, lr.start_date, lr.end_date,
       lr.reason, lr.status, lr.approver_name, lr.created_at
	FROM leave_requests lr
	JOIN employees e ON e.emp_id = lr.emp_id`

// LeaveRequestRepository reads leave applications.
type LeaveRequestRepository struct {
	db *sqlx.DB
}

// NewLeaveRequestRepository constructs the repository.
func NewLeaveRequestRepository(db *sqlx.DB) *LeaveRequestRepository {
	return &LeaveRequestRepository{db: db}
}

// GetByID fetches a leave request by identifier.
func (r *LeaveRequestRepository) GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	query := leaveRequestSelect + ` WHERE lr.request_id = $1`
	var request models.LeaveRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	return &request, nil
}

// Search returns leave requests matching the filter (latest first) with the total match count.
func (r *LeaveRequestRepository) Search(ctx context.Context, filter models.LeaveSearchFilter) ([]models.LeaveRequest, int, error) {
	conditions := make([]string, 0, 7)
	args := make([]interface{}, 0, 7)

	if filter.EmpID != "" {
		args = append(args, filter.EmpID)
		conditions = append(conditions, fmt.Sprintf("lr.emp_id = $%d", len(args)))
	}
	if filter.EmpName != "" {
		args = append(args, "%"+filter.EmpName+"%")
		conditions = append(conditions, fmt.Sprintf("e.emp_name ILIKE $%d", len(args)))
	}
	if filter.LeaveType != "" {
		args = append(args, filter.LeaveType)
		conditions = append(conditions, fmt.Sprintf("lr.leave_type = $%d", len(args)))
	}
	if filter.LeaveDate != nil {
		args = append(args, *filter.LeaveDate)
		conditions = append(conditions, fmt.Sprintf("(lr.start_date = $%d OR lr.end_date = $%d)", len(args), len(args)))
	}
	if filter.Status != "" {
		args = append(args, strings.ToUpper(filter.Status))
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", len(args)))
	}
	if filter.ApproverName != "" {
		args = append(args, "%"+filter.ApproverName+"%")
		conditions = append(conditions, fmt.Sprintf("lr.approver_name ILIKE $%d", len(args)))
	}
	if filter.RequestID != nil {
		args = append(args, *filter.RequestID)
		conditions = append(conditions, fmt.Sprintf("lr.request_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM leave_requests lr JOIN employees e ON e.emp_id = lr.emp_id` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 20
	}
	query := fmt.Sprintf("%s%s ORDER BY lr.created_at DESC LIMIT %d OFFSET %d", leaveRequestSelect, where, size, (page-1)*size)

	var requests []models.LeaveRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search leave requests: %w", err)
	}
	return requests, total, nil
}
