package models

import (
	"encoding/json"
	"time"
)

// AlterationType discriminates which substitute arrangement an alteration carries.
type AlterationType string

const (
	AlterationTypeMoodleLink AlterationType = "MOODLE_LINK"
	AlterationTypeStaff      AlterationType = "STAFF_ALTERATION"
)

// Valid reports whether the type is one of the supported kinds.
func (t AlterationType) Valid() bool {
	return t == AlterationTypeMoodleLink || t == AlterationTypeStaff
}

// NotificationStatus captures the replacement employee's decision on a staff alteration.
type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusApproved NotificationStatus = "APPROVED"
	NotificationStatusRejected NotificationStatus = "REJECTED"
)

// AlterationDetail is the type-specific half of an alteration. Exactly one of
// MoodleLinkDetail or StaffDetail is attached to every alteration.
type AlterationDetail interface {
	AlterationType() AlterationType
	isAlterationDetail()
}

// MoodleLinkDetail moves the class to an online activity; no approval is involved.
type MoodleLinkDetail struct {
	Link string
}

// AlterationType implements AlterationDetail.
func (MoodleLinkDetail) AlterationType() AlterationType { return AlterationTypeMoodleLink }

func (MoodleLinkDetail) isAlterationDetail() {}

// StaffDetail hands the class to a replacement employee who must accept or decline it.
type StaffDetail struct {
	ReplacementEmpID string
	Status           NotificationStatus
}

// AlterationType implements AlterationDetail.
func (StaffDetail) AlterationType() AlterationType { return AlterationTypeStaff }

func (StaffDetail) isAlterationDetail() {}

// Alteration is a substitute arrangement for one class missed during a leave request.
type Alteration struct {
	ID          int64
	RequestID   int64
	EmpID       string
	ClassDate   Date
	ClassPeriod int
	SubjectCode string
	SubjectName string
	Detail      AlterationDetail
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Type returns the discriminator derived from the attached detail.
func (a *Alteration) Type() AlterationType {
	if a == nil || a.Detail == nil {
		return ""
	}
	return a.Detail.AlterationType()
}

// Staff returns the staff detail when the alteration is a reassignment.
func (a *Alteration) Staff() (StaffDetail, bool) {
	if a == nil {
		return StaffDetail{}, false
	}
	staff, ok := a.Detail.(StaffDetail)
	return staff, ok
}

// NotificationStatus returns nil for moodle link alterations.
func (a *Alteration) NotificationStatus() *NotificationStatus {
	staff, ok := a.Staff()
	if !ok || staff.Status == "" {
		return nil
	}
	status := staff.Status
	return &status
}

// ReplacementEmpID returns the replacement employee or an empty string.
func (a *Alteration) ReplacementEmpID() string {
	staff, _ := a.Staff()
	return staff.ReplacementEmpID
}

// MoodleLink returns the activity link or an empty string.
func (a *Alteration) MoodleLink() string {
	if a == nil {
		return ""
	}
	if link, ok := a.Detail.(MoodleLinkDetail); ok {
		return link.Link
	}
	return ""
}

type alterationJSON struct {
	ID                 int64               `json:"alterationId"`
	RequestID          int64               `json:"requestId"`
	EmpID              string              `json:"empId"`
	AlterationType     AlterationType      `json:"alterationType"`
	ReplacementEmpID   *string             `json:"replacementEmpId"`
	MoodleActivityLink *string             `json:"moodleActivityLink"`
	NotificationStatus *NotificationStatus `json:"notificationStatus"`
	ClassDate          Date                `json:"classDate"`
	ClassPeriod        int                 `json:"classPeriod"`
	SubjectCode        string              `json:"subjectCode"`
	SubjectName        string              `json:"subjectName"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// MarshalJSON flattens the detail variant so absent fields render as null.
func (a Alteration) MarshalJSON() ([]byte, error) {
	out := alterationJSON{
		ID:                 a.ID,
		RequestID:          a.RequestID,
		EmpID:              a.EmpID,
		AlterationType:     a.Type(),
		NotificationStatus: a.NotificationStatus(),
		ClassDate:          a.ClassDate,
		ClassPeriod:        a.ClassPeriod,
		SubjectCode:        a.SubjectCode,
		SubjectName:        a.SubjectName,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	switch detail := a.Detail.(type) {
	case StaffDetail:
		out.ReplacementEmpID = &detail.ReplacementEmpID
	case MoodleLinkDetail:
		out.MoodleActivityLink = &detail.Link
	}
	return json.Marshal(out)
}
