package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leave-alteration-api/internal/dto"
	"github.com/noah-isme/leave-alteration-api/internal/middleware"
	"github.com/noah-isme/leave-alteration-api/internal/models"
	"github.com/noah-isme/leave-alteration-api/internal/service"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
)

type alterationServiceMock struct {
	assigned     []dto.AlterationRequest
	assignResp   []dto.AssignmentResult
	decisionResp *models.Alteration
	decisionErr  error
	lastActor    string
	lastID       int64
	approved     bool
	rejected     bool
	updateReq    dto.UpdateAlterationRequest
	statuses     []*models.NotificationStatus
	getErr       error
}

func (m *alterationServiceMock) AssignAlterations(ctx context.Context, items []dto.AlterationRequest) []dto.AssignmentResult {
	m.assigned = items
	return m.assignResp
}

func (m *alterationServiceMock) ApproveAlteration(ctx context.Context, id int64, actor string) (*models.Alteration, error) {
	m.approved = true
	m.lastID, m.lastActor = id, actor
	return m.decisionResp, m.decisionErr
}

func (m *alterationServiceMock) RejectAlteration(ctx context.Context, id int64, actor string) (*models.Alteration, error) {
	m.rejected = true
	m.lastID, m.lastActor = id, actor
	return m.decisionResp, m.decisionErr
}

func (m *alterationServiceMock) UpdateAlteration(ctx context.Context, id int64, req dto.UpdateAlterationRequest, actor string) (*models.Alteration, error) {
	m.lastID, m.lastActor, m.updateReq = id, actor, req
	return m.decisionResp, m.decisionErr
}

func (m *alterationServiceMock) GetAllAlterations(ctx context.Context) ([]models.Alteration, error) {
	return []models.Alteration{}, nil
}

func (m *alterationServiceMock) GetAlterationByID(ctx context.Context, id int64) (*models.Alteration, error) {
	m.lastID = id
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &models.Alteration{ID: id, Detail: models.MoodleLinkDetail{Link: "https://moodle"}}, nil
}

func (m *alterationServiceMock) GetNotificationStatuses(ctx context.Context, requestID int64) ([]*models.NotificationStatus, error) {
	m.lastID = requestID
	return m.statuses, nil
}

type rosterExporterMock struct {
	format dto.ExportFormat
	err    error
}

func (m *rosterExporterMock) Export(ctx context.Context, requestID int64, format dto.ExportFormat) (*service.RosterFile, error) {
	m.format = format
	if m.err != nil {
		return nil, m.err
	}
	return &service.RosterFile{Filename: "alteration-roster-1.csv", ContentType: "text/csv", Data: []byte("a,b\n")}, nil
}

func newTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req, _ := http.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func withActor(c *gin.Context, empID string) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{EmpID: empID, Role: models.RoleFaculty})
}

func TestAlterationHandlerAssignReport(t *testing.T) {
	id := int64(7)
	mockSvc := &alterationServiceMock{assignResp: []dto.AssignmentResult{
		{RequestID: 1, AlterationID: &id},
		{RequestID: 99, Error: "LeaveRequest 99 not found"},
	}}
	handler := NewAlterationHandler(mockSvc, &rosterExporterMock{})

	payload, _ := json.Marshal([]dto.AlterationRequest{
		{RequestID: 1, EmpID: "E1", AlterationType: models.AlterationTypeMoodleLink},
		{RequestID: 99, EmpID: "E1", AlterationType: models.AlterationTypeMoodleLink},
	})
	c, w := newTestContext(http.MethodPost, "/alterations", payload)
	handler.Assign(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mockSvc.assigned, 2)
	var body struct {
		Data dto.AssignmentReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Succeeded)
	assert.Equal(t, 1, body.Data.Failed)
	assert.Equal(t, "Alteration created successfully with ID: 7\nFailed to create alteration for requestId 99: LeaveRequest 99 not found\n", body.Data.Report)
}

func TestAlterationHandlerAssignRejectsBadBodies(t *testing.T) {
	handler := NewAlterationHandler(&alterationServiceMock{}, &rosterExporterMock{})

	c, w := newTestContext(http.MethodPost, "/alterations", []byte(`{"requestId":1}`))
	handler.Assign(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newTestContext(http.MethodPost, "/alterations", []byte(`[]`))
	handler.Assign(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlterationHandlerApproveUsesAuthenticatedActor(t *testing.T) {
	mockSvc := &alterationServiceMock{decisionResp: &models.Alteration{ID: 3, Detail: models.StaffDetail{ReplacementEmpID: "E2", Status: models.NotificationStatusApproved}}}
	handler := NewAlterationHandler(mockSvc, &rosterExporterMock{})

	c, w := newTestContext(http.MethodPost, "/alterations/3/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	withActor(c, "E2")
	handler.Approve(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.approved)
	assert.Equal(t, int64(3), mockSvc.lastID)
	assert.Equal(t, "E2", mockSvc.lastActor)
	assert.Contains(t, w.Body.String(), `"notificationStatus":"APPROVED"`)
}

func TestAlterationHandlerDecisionErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		actor  string
		id     string
		status int
	}{
		{name: "no actor", actor: "", id: "3", status: http.StatusUnauthorized},
		{name: "bad id", actor: "E2", id: "abc", status: http.StatusBadRequest},
		{name: "not found", actor: "E2", id: "3", err: appErrors.NotFound("Alteration", 3), status: http.StatusNotFound},
		{name: "already processed", actor: "E2", id: "3", err: appErrors.ErrInvalidState, status: appErrors.ErrInvalidState.Status},
		{name: "not the replacement", actor: "E9", id: "3", err: appErrors.ErrForbidden, status: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &alterationServiceMock{decisionErr: tt.err}
			handler := NewAlterationHandler(mockSvc, &rosterExporterMock{})

			c, w := newTestContext(http.MethodPost, "/alterations/"+tt.id+"/reject", nil)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}
			if tt.actor != "" {
				withActor(c, tt.actor)
			}
			handler.Reject(c)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAlterationHandlerUpdate(t *testing.T) {
	mockSvc := &alterationServiceMock{decisionResp: &models.Alteration{ID: 4, Detail: models.StaffDetail{ReplacementEmpID: "E3", Status: models.NotificationStatusPending}}}
	handler := NewAlterationHandler(mockSvc, &rosterExporterMock{})

	c, w := newTestContext(http.MethodPut, "/alterations/4", []byte(`{"alterationType":"STAFF_ALTERATION","replacementEmpId":"E3","classDate":"2024-03-05","classPeriod":2}`))
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	withActor(c, "E1")
	handler.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "E3", mockSvc.updateReq.ReplacementEmpID)
	assert.Equal(t, "2024-03-05", mockSvc.updateReq.ClassDate.String())
	assert.Equal(t, "E1", mockSvc.lastActor)
}

func TestAlterationHandlerGetNotFound(t *testing.T) {
	handler := NewAlterationHandler(&alterationServiceMock{getErr: appErrors.NotFound("Alteration", 5)}, &rosterExporterMock{})
	c, w := newTestContext(http.MethodGet, "/alterations/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAlterationHandlerStatusesKeepsNullEntries(t *testing.T) {
	pending := models.NotificationStatusPending
	mockSvc := &alterationServiceMock{statuses: []*models.NotificationStatus{nil, &pending}}
	handler := NewAlterationHandler(mockSvc, &rosterExporterMock{})

	c, w := newTestContext(http.MethodGet, "/leave-requests/1/alteration-statuses", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	handler.Statuses(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[null,"PENDING"]}`, w.Body.String())
}

func TestAlterationHandlerExport(t *testing.T) {
	exporter := &rosterExporterMock{}
	handler := NewAlterationHandler(&alterationServiceMock{}, exporter)

	c, w := newTestContext(http.MethodGet, "/leave-requests/1/alterations/export", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ExportFormatCSV, exporter.format)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "alteration-roster-1.csv")

	exporter.err = appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	c, w = newTestContext(http.MethodGet, "/leave-requests/1/alterations/export?format=xls", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ExportFormat("xls"), exporter.format)
}
