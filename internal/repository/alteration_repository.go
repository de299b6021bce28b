package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/leave-alteration-api/internal/models"
)

const alterationColumns = `alteration_id, request_id, emp_id, alteration_type, replacement_emp_id, moodle_activity_link,
       notification_status, class_date, class_period, subject_code, subject_name, created_at, updated_at`

// alterationRow is the flat table shape; the detail variant is rebuilt from the nullable columns.
type alterationRow struct {
	ID                 int64          `db:"alteration_id"`
	RequestID          int64          `db:"request_id"`
	EmpID              string         `db:"emp_id"`
	AlterationType     string         `db:"alteration_type"`
	ReplacementEmpID   sql.NullString `db:"replacement_emp_id"`
	MoodleActivityLink sql.NullString `db:"moodle_activity_link"`
	NotificationStatus sql.NullString `db:"notification_status"`
	ClassDate          models.Date    `db:"class_date"`
	ClassPeriod        int            `db:"class_period"`
	SubjectCode        string         `db:"subject_code"`
	SubjectName        string         `db:"subject_name"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (row alterationRow) toModel() (models.Alteration, error) {
	alteration := models.Alteration{
		ID:          row.ID,
		RequestID:   row.RequestID,
		EmpID:       row.EmpID,
		ClassDate:   row.ClassDate,
		ClassPeriod: row.ClassPeriod,
		SubjectCode: row.SubjectCode,
		SubjectName: row.SubjectName,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	switch models.AlterationType(row.AlterationType) {
	case models.AlterationTypeMoodleLink:
		alteration.Detail = models.MoodleLinkDetail{Link: row.MoodleActivityLink.String}
	case models.AlterationTypeStaff:
		alteration.Detail = models.StaffDetail{
			ReplacementEmpID: row.ReplacementEmpID.String,
			Status:           models.NotificationStatus(row.NotificationStatus.String),
		}
	default:
		return models.Alteration{}, fmt.Errorf("alteration %d has unknown type %q", row.ID, row.AlterationType)
	}
	return alteration, nil
}

// detailColumns flattens the variant; the inactive side is always written as NULL.
func detailColumns(detail models.AlterationDetail) (alterationType string, replacement, link, status sql.NullString) {
	switch d := detail.(type) {
	case models.MoodleLinkDetail:
		return string(models.AlterationTypeMoodleLink), sql.NullString{}, sql.NullString{String: d.Link, Valid: d.Link != ""}, sql.NullString{}
	case models.StaffDetail:
		return string(models.AlterationTypeStaff),
			sql.NullString{String: d.ReplacementEmpID, Valid: true},
			sql.NullString{},
			sql.NullString{String: string(d.Status), Valid: d.Status != ""}
	}
	return "", sql.NullString{}, sql.NullString{}, sql.NullString{}
}

// AlterationRepository persists leave alterations.
type AlterationRepository struct {
	db *sqlx.DB
}

// NewAlterationRepository constructs the repository.
func NewAlterationRepository(db *sqlx.DB) *AlterationRepository {
	return &AlterationRepository{db: db}
}

// Create inserts the alteration and stores the generated id back on it.
func (r *AlterationRepository) Create(ctx context.Context, alteration *models.Alteration) error {
	if alteration.Detail == nil {
		return fmt.Errorf("create alteration: missing detail")
	}
	now := time.Now().UTC()
	alteration.CreatedAt = now
	alteration.UpdatedAt = now
	altType, replacement, link, status := detailColumns(alteration.Detail)
	const query = `INSERT INTO leave_alterations
	(request_id, emp_id, alteration_type, replacement_emp_id, moodle_activity_link, notification_status,
	 class_date, class_period, subject_code, subject_name, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING alteration_id`
	err := r.db.QueryRowxContext(ctx, query,
		alteration.RequestID,
		alteration.EmpID,
		altType,
		replacement,
		link,
		status,
		alteration.ClassDate,
		alteration.ClassPeriod,
		alteration.SubjectCode,
		alteration.SubjectName,
		alteration.CreatedAt,
		alteration.UpdatedAt,
	).Scan(&alteration.ID)
	if err != nil {
		return fmt.Errorf("create alteration: %w", err)
	}
	return nil
}

// GetByID fetches an alteration; sql.ErrNoRows is returned untouched when absent.
func (r *AlterationRepository) GetByID(ctx context.Context, id int64) (*models.Alteration, error) {
	query := `SELECT ` + alterationColumns + ` FROM leave_alterations WHERE alteration_id = $1`
	var row alterationRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	alteration, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &alteration, nil
}

// List returns every alteration ordered by id.
func (r *AlterationRepository) List(ctx context.Context) ([]models.Alteration, error) {
	query := `SELECT ` + alterationColumns + ` FROM leave_alterations ORDER BY alteration_id`
	return r.selectAlterations(ctx, "list alterations", query)
}

// ListByRequestID returns the alterations of one leave request in class order.
func (r *AlterationRepository) ListByRequestID(ctx context.Context, requestID int64) ([]models.Alteration, error) {
	query := `SELECT ` + alterationColumns + ` FROM leave_alterations WHERE request_id = $1
	ORDER BY class_date, class_period, alteration_id`
	return r.selectAlterations(ctx, "list alterations by request", query, requestID)
}

func (r *AlterationRepository) selectAlterations(ctx context.Context, op, query string, args ...interface{}) ([]models.Alteration, error) {
	var rows []alterationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	alterations := make([]models.Alteration, 0, len(rows))
	for _, row := range rows {
		alteration, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		alterations = append(alterations, alteration)
	}
	return alterations, nil
}

// Update overwrites the mutable columns of an alteration.
func (r *AlterationRepository) Update(ctx context.Context, alteration *models.Alteration) error {
	if alteration.Detail == nil {
		return fmt.Errorf("update alteration: missing detail")
	}
	alteration.UpdatedAt = time.Now().UTC()
	altType, replacement, link, status := detailColumns(alteration.Detail)
	const query = `UPDATE leave_alterations SET
	alteration_type = $1, replacement_emp_id = $2, moodle_activity_link = $3, notification_status = $4,
	class_date = $5, class_period = $6, subject_code = $7, subject_name = $8, updated_at = $9
	WHERE alteration_id = $10`
	result, err := r.db.ExecContext(ctx, query,
		altType,
		replacement,
		link,
		status,
		alteration.ClassDate,
		alteration.ClassPeriod,
		alteration.SubjectCode,
		alteration.SubjectName,
		alteration.UpdatedAt,
		alteration.ID,
	)
	if err != nil {
		return fmt.Errorf("update alteration: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check alteration update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateDecision moves a PENDING staff alteration to a decided status. The guard on status and
// replacement makes concurrent approve/reject calls settle on exactly one winner; losers get sql.ErrNoRows.
func (r *AlterationRepository) UpdateDecision(ctx context.Context, id int64, replacementEmpID string, status models.NotificationStatus) error {
	const query = `UPDATE leave_alterations SET notification_status = $1, updated_at = $2
	WHERE alteration_id = $3 AND replacement_emp_id = $4 AND notification_status = $5`
	result, err := r.db.ExecContext(ctx, query, string(status), time.Now().UTC(), id, replacementEmpID, string(models.NotificationStatusPending))
	if err != nil {
		return fmt.Errorf("update alteration decision: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check alteration decision rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// NotificationStatusesByRequestID returns the status column for every alteration of a leave request.
// Moodle link alterations yield nil entries.
func (r *AlterationRepository) NotificationStatusesByRequestID(ctx context.Context, requestID int64) ([]*models.NotificationStatus, error) {
	const query = `SELECT notification_status FROM leave_alterations WHERE request_id = $1 ORDER BY alteration_id`
	var raw []sql.NullString
	if err := r.db.SelectContext(ctx, &raw, query, requestID); err != nil {
		return nil, fmt.Errorf("list notification statuses: %w", err)
	}
	statuses := make([]*models.NotificationStatus, len(raw))
	for i, value := range raw {
		if !value.Valid {
			continue
		}
		status := models.NotificationStatus(value.String)
		statuses[i] = &status
	}
	return statuses, nil
}

// ListPendingBetween returns staff alterations still awaiting a decision whose class falls within [from, to].
func (r *AlterationRepository) ListPendingBetween(ctx context.Context, from, to models.Date) ([]models.Alteration, error) {
	query := `SELECT ` + alterationColumns + ` FROM leave_alterations
	WHERE alteration_type = $1 AND notification_status = $2 AND class_date BETWEEN $3 AND $4
	ORDER BY class_date, class_period, alteration_id`
	return r.selectAlterations(ctx, "list pending alterations", query,
		string(models.AlterationTypeStaff), string(models.NotificationStatusPending), from, to)
}
