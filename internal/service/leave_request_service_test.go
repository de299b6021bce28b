package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leave-alteration-api/internal/dto"
	"github.com/noah-isme/leave-alteration-api/internal/models"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
)

type mockLeaveRequestRepo struct {
	requests   map[int64]models.LeaveRequest
	lastFilter models.LeaveSearchFilter
	total      int
	err        error
}

func (m *mockLeaveRequestRepo) GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	if lr, ok := m.requests[id]; ok {
		return &lr, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLeaveRequestRepo) Search(ctx context.Context, filter models.LeaveSearchFilter) ([]models.LeaveRequest, int, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, 0, m.err
	}
	out := make([]models.LeaveRequest, 0, len(m.requests))
	for _, lr := range m.requests {
		out = append(out, lr)
	}
	return out, m.total, nil
}

func TestLeaveRequestServiceSearchNormalisesFilter(t *testing.T) {
	repo := &mockLeaveRequestRepo{requests: map[int64]models.LeaveRequest{5: {ID: 5, EmpID: "E1"}}, total: 1}
	svc := NewLeaveRequestService(repo, nil, nil)

	items, pagination, err := svc.Search(context.Background(), dto.LeaveSearchQuery{EmpName: "  asha ", LeaveDate: "2024-05-01"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "asha", repo.lastFilter.EmpName)
	require.NotNil(t, repo.lastFilter.LeaveDate)
	assert.Equal(t, "2024-05-01", repo.lastFilter.LeaveDate.String())
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestLeaveRequestServiceSearchValidation(t *testing.T) {
	svc := NewLeaveRequestService(&mockLeaveRequestRepo{}, nil, nil)
	_, _, err := svc.Search(context.Background(), dto.LeaveSearchQuery{LeaveDate: "01/05/2024"})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, _, err = svc.Search(context.Background(), dto.LeaveSearchQuery{PageSize: 500})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestLeaveRequestServiceSearchEmpty(t *testing.T) {
	svc := NewLeaveRequestService(&mockLeaveRequestRepo{}, nil, nil)
	items, _, err := svc.Search(context.Background(), dto.LeaveSearchQuery{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLeaveRequestServiceGet(t *testing.T) {
	repo := &mockLeaveRequestRepo{requests: map[int64]models.LeaveRequest{5: {ID: 5}}}
	svc := NewLeaveRequestService(repo, nil, nil)

	lr, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), lr.ID)

	_, err = svc.Get(context.Background(), 6)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "LeaveRequest 6 not found", err.Error())

	repo.err = errors.New("connection reset")
	_, err = svc.Get(context.Background(), 5)
	require.ErrorIs(t, err, appErrors.ErrInternal)
}
