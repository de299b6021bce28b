package dto

import "github.com/noah-isme/leave-alteration-api/internal/models"

// LeaveSearchQuery mirrors the query string of the leave request search endpoint.
type LeaveSearchQuery struct {
	EmpID        string `form:"empId"`
	EmpName      string `form:"empName"`
	LeaveType    string `form:"leaveType"`
	LeaveDate    string `form:"leaveDate" validate:"omitempty,datetime=2006-01-02"`
	Status       string `form:"status"`
	ApproverName string `form:"approverName"`
	RequestID    *int64 `form:"requestId" validate:"omitempty,gt=0"`
	Page         int    `form:"page" validate:"omitempty,gte=1"`
	PageSize     int    `form:"pageSize" validate:"omitempty,gte=1,lte=200"`
}

// Filter converts the query into a repository filter. LeaveDate must already be validated.
func (q LeaveSearchQuery) Filter() (models.LeaveSearchFilter, error) {
	filter := models.LeaveSearchFilter{
		EmpID:        q.EmpID,
		EmpName:      q.EmpName,
		LeaveType:    q.LeaveType,
		Status:       q.Status,
		ApproverName: q.ApproverName,
		RequestID:    q.RequestID,
		Page:         q.Page,
		PageSize:     q.PageSize,
	}
	if q.LeaveDate != "" {
		date, err := models.ParseDate(q.LeaveDate)
		if err != nil {
			return models.LeaveSearchFilter{}, err
		}
		filter.LeaveDate = &date
	}
	return filter, nil
}
