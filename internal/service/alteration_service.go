package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/leave-alteration-api/internal/dto"
	"github.com/noah-isme/leave-alteration-api/internal/models"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
)

type alterationStore interface {
	Create(ctx context.Context, alteration *models.Alteration) error
	GetByID(ctx context.Context, id int64) (*models.Alteration, error)
	List(ctx context.Context) ([]models.Alteration, error)
	Update(ctx context.Context, alteration *models.Alteration) error
	UpdateDecision(ctx context.Context, id int64, replacementEmpID string, status models.NotificationStatus) error
	NotificationStatusesByRequestID(ctx context.Context, requestID int64) ([]*models.NotificationStatus, error)
}

type leaveRequestReader interface {
	GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error)
}

type employeeReader interface {
	GetByEmpID(ctx context.Context, empID string) (*models.Employee, error)
}

type notificationSender interface {
	Send(ctx context.Context, recipientEmpID string, kind models.NotificationType, message string) (*models.Notification, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AlterationServiceOption customises the alteration service.
type AlterationServiceOption func(*AlterationService)

// WithAlterationStatusCache caches notification statuses per leave request.
func WithAlterationStatusCache(cache *CacheService, ttl time.Duration) AlterationServiceOption {
	return func(s *AlterationService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithAlterationMetrics attaches Prometheus counters.
func WithAlterationMetrics(metrics *MetricsService) AlterationServiceOption {
	return func(s *AlterationService) {
		s.metrics = metrics
	}
}

// WithAlterationAudit records approve, reject and update actions.
func WithAlterationAudit(audit auditLogger) AlterationServiceOption {
	return func(s *AlterationService) {
		s.audit = audit
	}
}

// AlterationService manages the alteration lifecycle: bulk assignment, replacement decisions and edits.
type AlterationService struct {
	alterations   alterationStore
	leaveRequests leaveRequestReader
	employees     employeeReader
	notifier      notificationSender
	audit         auditLogger
	cache         *CacheService
	cacheTTL      time.Duration
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
}

// NewAlterationService wires the alteration service.
func NewAlterationService(alterations alterationStore, leaveRequests leaveRequestReader, employees employeeReader, notifier notificationSender, validate *validator.Validate, logger *zap.Logger, opts ...AlterationServiceOption) *AlterationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AlterationService{
		alterations:   alterations,
		leaveRequests: leaveRequests,
		employees:     employees,
		notifier:      notifier,
		validator:     validate,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// AssignAlterations processes every item independently. A failing item never aborts the batch.
func (s *AlterationService) AssignAlterations(ctx context.Context, items []dto.AlterationRequest) []dto.AssignmentResult {
	results := make([]dto.AssignmentResult, 0, len(items))
	for _, item := range items {
		result := dto.AssignmentResult{RequestID: item.RequestID}
		id, err := s.assignOne(ctx, item)
		if err != nil {
			result.Error = err.Error()
			s.logger.Warn("alteration assignment failed",
				zap.Int64("request_id", item.RequestID),
				zap.String("emp_id", item.EmpID),
				zap.Error(err))
		} else {
			result.AlterationID = &id
		}
		s.metrics.RecordAlterationAssignment(item.AlterationType, err == nil)
		results = append(results, result)
	}
	return results
}

func (s *AlterationService) assignOne(ctx context.Context, item dto.AlterationRequest) (int64, error) {
	if err := s.validator.Struct(item); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid alteration payload")
	}
	if _, err := s.loadLeaveRequest(ctx, item.RequestID); err != nil {
		return 0, err
	}
	if _, err := s.loadEmployee(ctx, "Employee", item.EmpID); err != nil {
		return 0, err
	}

	detail, err := s.buildDetail(ctx, item.AlterationType, item.ReplacementEmpID, item.MoodleActivityLink)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	alteration := &models.Alteration{
		RequestID:   item.RequestID,
		EmpID:       item.EmpID,
		ClassDate:   item.ClassDate,
		ClassPeriod: item.ClassPeriod,
		SubjectCode: item.SubjectCode,
		SubjectName: item.SubjectName,
		Detail:      detail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.alterations.Create(ctx, alteration); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save alteration")
	}
	s.invalidateStatuses(ctx, alteration.RequestID)

	staff, ok := alteration.Staff()
	if !ok {
		return alteration.ID, nil
	}
	requester, err := s.loadEmployee(ctx, "Requesting employee", item.EmpID)
	if err != nil {
		return 0, err
	}
	message := assignmentMessage(alteration, requester)
	if _, err := s.notifier.Send(ctx, staff.ReplacementEmpID, models.NotificationTypeAlterationAssigned, message); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to notify replacement employee")
	}
	return alteration.ID, nil
}

func assignmentMessage(alteration *models.Alteration, requester *models.Employee) string {
	return fmt.Sprintf("You have been assigned to handle class alteration (ID: %d) on %s (Period: %d, Subject: %s) by %s (%s)",
		alteration.ID, alteration.ClassDate.String(), alteration.ClassPeriod, alteration.SubjectName, requester.EmpName, requester.EmpID)
}

// buildDetail derives the variant. Moodle link alterations ignore any supplied replacement.
func (s *AlterationService) buildDetail(ctx context.Context, altType models.AlterationType, replacementEmpID, link string) (models.AlterationDetail, error) {
	switch altType {
	case models.AlterationTypeMoodleLink:
		return models.MoodleLinkDetail{Link: link}, nil
	case models.AlterationTypeStaff:
		replacement, err := s.loadEmployee(ctx, "Replacement employee", replacementEmpID)
		if err != nil {
			return nil, err
		}
		return models.StaffDetail{ReplacementEmpID: replacement.EmpID, Status: models.NotificationStatusPending}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported alteration type %q", altType))
	}
}

// ApproveAlteration records the replacement employee's acceptance.
func (s *AlterationService) ApproveAlteration(ctx context.Context, id int64, actorEmpID string) (*models.Alteration, error) {
	return s.decide(ctx, id, actorEmpID, models.NotificationStatusApproved)
}

// RejectAlteration records the replacement employee's refusal.
func (s *AlterationService) RejectAlteration(ctx context.Context, id int64, actorEmpID string) (*models.Alteration, error) {
	return s.decide(ctx, id, actorEmpID, models.NotificationStatusRejected)
}

func (s *AlterationService) decide(ctx context.Context, id int64, actorEmpID string, status models.NotificationStatus) (*models.Alteration, error) {
	alteration, err := s.GetAlterationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	staff, ok := alteration.Staff()
	if !ok || staff.Status != models.NotificationStatusPending {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "")
	}
	verb, action := "approve", models.AuditActionAlterationApprove
	if status == models.NotificationStatusRejected {
		verb, action = "reject", models.AuditActionAlterationReject
	}
	if actorEmpID == "" || actorEmpID != staff.ReplacementEmpID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("Only the assigned replacement faculty can %s this alteration.", verb))
	}

	if err := s.alterations.UpdateDecision(ctx, id, actorEmpID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save decision")
	}

	staff.Status = status
	alteration.Detail = staff
	alteration.UpdatedAt = s.now().UTC()
	s.invalidateStatuses(ctx, alteration.RequestID)
	s.metrics.RecordAlterationDecision(status)
	s.logger.Info("alteration decided",
		zap.Int64("alteration_id", id),
		zap.String("decision", string(status)),
		zap.String("actor_emp_id", actorEmpID))
	s.recordAudit(ctx, action, actorEmpID, id, map[string]string{"notificationStatus": string(models.NotificationStatusPending)}, map[string]string{"notificationStatus": string(status)})
	return alteration, nil
}

// UpdateAlteration overwrites class metadata and re-derives the variant. A staff update re-opens the decision.
func (s *AlterationService) UpdateAlteration(ctx context.Context, id int64, req dto.UpdateAlterationRequest, actorEmpID string) (*models.Alteration, error) {
	alteration, err := s.GetAlterationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid alteration payload")
	}
	before := *alteration

	alteration.ClassDate = req.ClassDate
	alteration.ClassPeriod = req.ClassPeriod
	alteration.SubjectName = req.SubjectName
	alteration.SubjectCode = req.SubjectCode

	detail, err := s.buildDetail(ctx, req.AlterationType, req.ReplacementEmpID, req.MoodleActivityLink)
	if err != nil {
		return nil, err
	}
	alteration.Detail = detail
	alteration.UpdatedAt = s.now().UTC()

	if err := s.alterations.Update(ctx, alteration); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Alteration", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update alteration")
	}
	s.invalidateStatuses(ctx, alteration.RequestID)
	s.recordAudit(ctx, models.AuditActionAlterationUpdate, actorEmpID, id, before, alteration)
	return alteration, nil
}

// GetAllAlterations lists every alteration.
func (s *AlterationService) GetAllAlterations(ctx context.Context) ([]models.Alteration, error) {
	alterations, err := s.alterations.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list alterations")
	}
	return alterations, nil
}

// GetAlterationByID loads one alteration.
func (s *AlterationService) GetAlterationByID(ctx context.Context, id int64) (*models.Alteration, error) {
	alteration, err := s.alterations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Alteration", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alteration")
	}
	return alteration, nil
}

// GetNotificationStatuses returns the status of every alteration of a leave request. Moodle link alterations yield nil.
func (s *AlterationService) GetNotificationStatuses(ctx context.Context, requestID int64) ([]*models.NotificationStatus, error) {
	key := statusCacheKey(requestID)
	var cached []*models.NotificationStatus
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	statuses, err := s.alterations.NotificationStatusesByRequestID(ctx, requestID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notification statuses")
	}
	if statuses == nil {
		statuses = []*models.NotificationStatus{}
	}
	_ = s.cache.Set(ctx, key, statuses, s.cacheTTL)
	return statuses, nil
}

func statusCacheKey(requestID int64) string {
	return fmt.Sprintf("alterations:statuses:%d", requestID)
}

func (s *AlterationService) invalidateStatuses(ctx context.Context, requestID int64) {
	_ = s.cache.Invalidate(ctx, statusCacheKey(requestID))
}

func (s *AlterationService) loadLeaveRequest(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	request, err := s.leaveRequests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("LeaveRequest", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave request")
	}
	return request, nil
}

func (s *AlterationService) loadEmployee(ctx context.Context, entity, empID string) (*models.Employee, error) {
	employee, err := s.employees.GetByEmpID(ctx, empID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound(entity, empID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return employee, nil
}

func (s *AlterationService) recordAudit(ctx context.Context, action, actorEmpID string, id int64, before, after interface{}) {
	if s.audit == nil {
		return
	}
	oldValues, _ := json.Marshal(before)
	newValues, _ := json.Marshal(after)
	resourceID := strconv.FormatInt(id, 10)
	entry := &models.AuditLog{
		Action:     action,
		Resource:   "alteration",
		ResourceID: &resourceID,
		OldValues:  oldValues,
		NewValues:  newValues,
		CreatedAt:  s.now().UTC(),
	}
	if actorEmpID != "" {
		actor := actorEmpID
		entry.UserID = &actor
	}
	if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit log", zap.String("action", action), zap.Int64("alteration_id", id), zap.Error(err))
	}
}
