package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leave-alteration-api/internal/models"
)

var leaveRequestColumns = []string{"request_id", "emp_id", "emp_name", "leave_type", "start_date", "end_date", "reason", "status", "approver_name", "created_at"}

func TestLeaveRequestRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLeaveRequestRepository(db)
	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lr.request_id")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(leaveRequestColumns).
			AddRow(5, "E1", "Asha Raman", "CASUAL", start, start.AddDate(0, 0, 2), nil, "PENDING", nil, time.Now()))

	request, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), request.ID)
	assert.Equal(t, "2024-05-03", request.EndDate.String())
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT lr.request_id")).
		WithArgs(int64(6)).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), 6)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLeaveRequestRepositorySearchFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLeaveRequestRepository(db)
	leaveDate := models.NewDate(2024, time.May, 1)
	filter := models.LeaveSearchFilter{
		EmpName:      "asha",
		LeaveDate:    &leaveDate,
		Status:       "approved",
		ApproverName: "Dean",
		Page:         2,
		PageSize:     10,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leave_requests lr")).
		WithArgs("%asha%", sqlmock.AnyArg(), "APPROVED", "%Dean%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`(?s)SELECT lr\.request_id.+e\.emp_name ILIKE \$1 AND \(lr\.start_date = \$2 OR lr\.end_date = \$2\) AND lr\.status = \$3 AND lr\.approver_name ILIKE \$4 ORDER BY lr\.created_at DESC LIMIT 10 OFFSET 10`).
		WithArgs("%asha%", sqlmock.AnyArg(), "APPROVED", "%Dean%").
		WillReturnRows(sqlmock.NewRows(leaveRequestColumns).
			AddRow(3, "E1", "Asha Raman", "CASUAL", leaveDate.Time, leaveDate.Time, "family", "APPROVED", "Dean", time.Now()))

	requests, total, err := repo.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, requests, 1)
	require.NotNil(t, requests[0].ApproverName)
	assert.Equal(t, "Dean", *requests[0].ApproverName)
	require.NoError(t, mock.ExpectationsWereMet())
}
