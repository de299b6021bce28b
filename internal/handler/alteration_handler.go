package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/leave-alteration-api/internal/dto"
	"github.com/noah-isme/leave-alteration-api/internal/models"
	"github.com/noah-isme/leave-alteration-api/internal/service"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
	"github.com/noah-isme/leave-alteration-api/pkg/response"
)

type alterationService interface {
	AssignAlterations(ctx context.Context, items []dto.AlterationRequest) []dto.AssignmentResult
	ApproveAlteration(ctx context.Context, id int64, actorEmpID string) (*models.Alteration, error)
	RejectAlteration(ctx context.Context, id int64, actorEmpID string) (*models.Alteration, error)
	UpdateAlteration(ctx context.Context, id int64, req dto.UpdateAlterationRequest, actorEmpID string) (*models.Alteration, error)
	GetAllAlterations(ctx context.Context) ([]models.Alteration, error)
	GetAlterationByID(ctx context.Context, id int64) (*models.Alteration, error)
	GetNotificationStatuses(ctx context.Context, requestID int64) ([]*models.NotificationStatus, error)
}

type rosterExporter interface {
	Export(ctx context.Context, requestID int64, format dto.ExportFormat) (*service.RosterFile, error)
}

// AlterationHandler exposes the alteration lifecycle endpoints.
type AlterationHandler struct {
	service  alterationService
	exporter rosterExporter
}

// NewAlterationHandler builds the handler.
func NewAlterationHandler(service alterationService, exporter rosterExporter) *AlterationHandler {
	return &AlterationHandler{service: service, exporter: exporter}
}

// Assign godoc
// @Summary Assign class alterations in bulk
// @Description Items are processed independently; the report carries one line per item.
// @Tags Alterations
// @Accept json
// @Produce json
// @Param payload body []dto.AlterationRequest true "Alterations"
// @Success 200 {object} response.Envelope
// @Router /alterations [post]
func (h *AlterationHandler) Assign(c *gin.Context) {
	var items []dto.AlterationRequest
	if err := c.ShouldBindJSON(&items); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid alteration payload"))
		return
	}
	if len(items) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "at least one alteration is required"))
		return
	}
	results := h.service.AssignAlterations(c.Request.Context(), items)
	response.JSON(c, http.StatusOK, dto.NewAssignmentReport(results), nil)
}

// List godoc
// @Summary List all alterations
// @Tags Alterations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /alterations [get]
func (h *AlterationHandler) List(c *gin.Context) {
	items, err := h.service.GetAllAlterations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get an alteration
// @Tags Alterations
// @Produce json
// @Param id path int true "Alteration ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /alterations/{id} [get]
func (h *AlterationHandler) Get(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetAlterationByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Update godoc
// @Summary Update an alteration
// @Description Switching to STAFF_ALTERATION re-opens the decision as PENDING.
// @Tags Alterations
// @Accept json
// @Produce json
// @Param id path int true "Alteration ID"
// @Param payload body dto.UpdateAlterationRequest true "Alteration"
// @Success 200 {object} response.Envelope
// @Router /alterations/{id} [put]
func (h *AlterationHandler) Update(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateAlterationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid alteration payload"))
		return
	}
	item, err := h.service.UpdateAlteration(c.Request.Context(), id, req, actorEmpID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Approve godoc
// @Summary Accept an assigned alteration
// @Description Only the replacement employee named on the alteration may decide.
// @Tags Alterations
// @Produce json
// @Param id path int true "Alteration ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /alterations/{id}/approve [post]
func (h *AlterationHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.ApproveAlteration)
}

// Reject godoc
// @Summary Decline an assigned alteration
// @Tags Alterations
// @Produce json
// @Param id path int true "Alteration ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /alterations/{id}/reject [post]
func (h *AlterationHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.RejectAlteration)
}

func (h *AlterationHandler) decide(c *gin.Context, decide func(context.Context, int64, string) (*models.Alteration, error)) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	actor := actorEmpID(c)
	if actor == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	item, err := decide(c.Request.Context(), id, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Statuses godoc
// @Summary Notification statuses of a leave request's alterations
// @Description Moodle link alterations contribute null entries.
// @Tags Alterations
// @Produce json
// @Param id path int true "Leave request ID"
// @Success 200 {object} response.Envelope
// @Router /leave-requests/{id}/alteration-statuses [get]
func (h *AlterationHandler) Statuses(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	statuses, err := h.service.GetNotificationStatuses(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, statuses, nil)
}

// Export godoc
// @Summary Download the alteration roster of a leave request
// @Tags Alterations
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Leave request ID"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Router /leave-requests/{id}/alterations/export [get]
func (h *AlterationHandler) Export(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), id, dto.ExportFormat(c.DefaultQuery("format", string(dto.ExportFormatCSV))))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
