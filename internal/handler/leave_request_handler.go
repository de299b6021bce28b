package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/leave-alteration-api/internal/dto"
	"github.com/noah-isme/leave-alteration-api/internal/models"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
	"github.com/noah-isme/leave-alteration-api/pkg/response"
)

type leaveRequestService interface {
	Search(ctx context.Context, query dto.LeaveSearchQuery) ([]models.LeaveRequest, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.LeaveRequest, error)
}

// LeaveRequestHandler exposes leave request lookups.
type LeaveRequestHandler struct {
	service leaveRequestService
}

// NewLeaveRequestHandler builds the handler.
func NewLeaveRequestHandler(service leaveRequestService) *LeaveRequestHandler {
	return &LeaveRequestHandler{service: service}
}

// Search godoc
// @Summary Search leave requests
// @Tags LeaveRequests
// @Produce json
// @Param empId query string false "Employee ID"
// @Param empName query string false "Employee name (partial)"
// @Param leaveType query string false "Leave type"
// @Param leaveDate query string false "Matches start or end date (YYYY-MM-DD)"
// @Param status query string false "Status"
// @Param approverName query string false "Approver name (partial)"
// @Param requestId query int false "Request ID"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /leave-requests [get]
func (h *LeaveRequestHandler) Search(c *gin.Context) {
	var query dto.LeaveSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave search query"))
		return
	}
	items, pagination, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get a leave request
// @Tags LeaveRequests
// @Produce json
// @Param id path int true "Leave request ID"
// @Success 200 {object} response.Envelope
// @Router /leave-requests/{id} [get]
func (h *LeaveRequestHandler) Get(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
