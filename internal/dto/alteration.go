package dto

import (
	"fmt"
	"strings"

	"github.com/noah-isme/leave-alteration-api/internal/models"
)

// AlterationRequest is one item of a bulk alteration submission.
type AlterationRequest struct {
	RequestID          int64                 `json:"requestId"`
	EmpID              string                `json:"empId" validate:"required"`
	AlterationType     models.AlterationType `json:"alterationType" validate:"required,oneof=MOODLE_LINK STAFF_ALTERATION"`
	ReplacementEmpID   string                `json:"replacementEmpId" validate:"required_if=AlterationType STAFF_ALTERATION"`
	MoodleActivityLink string                `json:"moodleActivityLink"`
	ClassDate          models.Date           `json:"classDate"`
	ClassPeriod        int                   `json:"classPeriod" validate:"gte=0"`
	SubjectCode        string                `json:"subjectCode"`
	SubjectName        string                `json:"subjectName"`
}

// UpdateAlterationRequest overwrites an existing alteration.
type UpdateAlterationRequest struct {
	AlterationType     models.AlterationType `json:"alterationType" validate:"required,oneof=MOODLE_LINK STAFF_ALTERATION"`
	ReplacementEmpID   string                `json:"replacementEmpId" validate:"required_if=AlterationType STAFF_ALTERATION"`
	MoodleActivityLink string                `json:"moodleActivityLink"`
	ClassDate          models.Date           `json:"classDate"`
	ClassPeriod        int                   `json:"classPeriod" validate:"gte=0"`
	SubjectCode        string                `json:"subjectCode"`
	SubjectName        string                `json:"subjectName"`
}

// AssignmentResult is the outcome of one bulk item: either AlterationID or Error is set.
type AssignmentResult struct {
	RequestID    int64  `json:"requestId"`
	AlterationID *int64 `json:"alterationId,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Succeeded reports whether the item was persisted.
func (r AssignmentResult) Succeeded() bool {
	return r.AlterationID != nil
}

// Line renders the result as a single report line.
func (r AssignmentResult) Line() string {
	if r.Succeeded() {
		return fmt.Sprintf("Alteration created successfully with ID: %d", *r.AlterationID)
	}
	return fmt.Sprintf("Failed to create alteration for requestId %d: %s", r.RequestID, r.Error)
}

// FormatAssignmentReport renders one newline-terminated line per result, in order.
func FormatAssignmentReport(results []AssignmentResult) string {
	var b strings.Builder
	for _, result := range results {
		b.WriteString(result.Line())
		b.WriteByte('\n')
	}
	return b.String()
}

// AssignmentReport is returned by the bulk endpoint.
type AssignmentReport struct {
	Results   []AssignmentResult `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Report    string             `json:"report"`
}

// NewAssignmentReport summarises results.
func NewAssignmentReport(results []AssignmentResult) AssignmentReport {
	report := AssignmentReport{Results: results, Report: FormatAssignmentReport(results)}
	for _, r := range results {
		if r.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}

// ExportFormat selects the roster rendering.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)
