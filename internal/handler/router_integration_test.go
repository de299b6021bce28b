package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leave-alteration-api/internal/models"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
)

type tokenStub map[string]*models.JWTClaims

func (s tokenStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

type auditRecorder struct {
	entries []models.AuditLog
}

func (a *auditRecorder) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	a.entries = append(a.entries, *log)
	return nil
}

func buildRouter(alterations *alterationServiceMock, audit *auditRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	Routes{
		Alterations:   NewAlterationHandler(alterations, &rosterExporterMock{}),
		LeaveRequests: NewLeaveRequestHandler(&leaveRequestServiceMock{}),
		Notifications: NewNotificationHandler(&notificationServiceMock{}),
		Tokens: tokenStub{
			"faculty": {EmpID: "E2", Role: models.RoleFaculty},
			"hod":     {EmpID: "E9", Role: models.RoleHOD},
		},
		Audit: audit,
	}.Register(router.Group("/api/v1"))
	return router
}

func performRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutesIntegration(t *testing.T) {
	alterations := &alterationServiceMock{decisionResp: &models.Alteration{ID: 3, Detail: models.StaffDetail{ReplacementEmpID: "E2", Status: models.NotificationStatusRejected}}}
	audit := &auditRecorder{}
	router := buildRouter(alterations, audit)

	t.Run("missing token", func(t *testing.T) {
		resp := performRequest(router, http.MethodGet, "/api/v1/alterations/3", "")
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("decision carries token subject", func(t *testing.T) {
		resp := performRequest(router, http.MethodPost, "/api/v1/alterations/3/reject", "faculty")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.True(t, alterations.rejected)
		assert.Equal(t, "E2", alterations.lastActor)
	})

	t.Run("listing all alterations needs a supervisor", func(t *testing.T) {
		resp := performRequest(router, http.MethodGet, "/api/v1/alterations", "faculty")
		require.Equal(t, http.StatusForbidden, resp.Code)
		resp = performRequest(router, http.MethodGet, "/api/v1/alterations", "hod")
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("roster export is audited", func(t *testing.T) {
		resp := performRequest(router, http.MethodGet, "/api/v1/leave-requests/1/alterations/export?format=csv", "hod")
		require.Equal(t, http.StatusOK, resp.Code)
		require.Len(t, audit.entries, 1)
		assert.Equal(t, models.AuditActionRosterExport, audit.entries[0].Action)
		require.NotNil(t, audit.entries[0].ResourceID)
		assert.Equal(t, "1", *audit.entries[0].ResourceID)
	})

	t.Run("statuses", func(t *testing.T) {
		resp := performRequest(router, http.MethodGet, "/api/v1/leave-requests/1/alteration-statuses", "faculty")
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("notifications", func(t *testing.T) {
		resp := performRequest(router, http.MethodGet, "/api/v1/notifications", "faculty")
		require.Equal(t, http.StatusOK, resp.Code)
	})
}
