package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/leave-alteration-api/internal/dto"
	"github.com/noah-isme/leave-alteration-api/internal/models"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
)

type leaveRequestRepository interface {
	GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error)
	Search(ctx context.Context, filter models.LeaveSearchFilter) ([]models.LeaveRequest, int, error)
}

// LeaveRequestService exposes read access to leave requests.
type LeaveRequestService struct {
	repo      leaveRequestRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLeaveRequestService constructs the service.
func NewLeaveRequestService(repo leaveRequestRepository, validate *validator.Validate, logger *zap.Logger) *LeaveRequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveRequestService{repo: repo, validator: validate, logger: logger}
}

// Search filters leave requests and returns pagination metadata.
func (s *LeaveRequestService) Search(ctx context.Context, query dto.LeaveSearchQuery) ([]models.LeaveRequest, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave search query")
	}
	filter, err := query.Filter()
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave date")
	}
	filter.EmpID = strings.TrimSpace(filter.EmpID)
	filter.EmpName = strings.TrimSpace(filter.EmpName)
	filter.LeaveType = strings.TrimSpace(filter.LeaveType)
	filter.Status = strings.TrimSpace(filter.Status)
	filter.ApproverName = strings.TrimSpace(filter.ApproverName)
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 20
	}

	requests, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search leave requests")
	}
	if requests == nil {
		requests = []models.LeaveRequest{}
	}
	return requests, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns one leave request.
func (s *LeaveRequestService) Get(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapLeaveRequestErr(err, id)
	}
	return request, nil
}

func mapLeaveRequestErr(err error, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFound("LeaveRequest", id)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave request")
}
