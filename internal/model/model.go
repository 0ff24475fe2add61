package model

import (
	"slices"
	"time"
)

// Право на курс

type Entitlement struct {
	UUID                string     `json:"uuid"`
	User                string     `json:"user"`
	CourseUUID          string     `json:"course_uuid"`
	EnrollmentCourseRun *string    `json:"enrollment_course_run"`
	Mode                string     `json:"mode"`
	OrderNumber         string     `json:"order_number"`
	Created             time.Time  `json:"created"`
	Modified            time.Time  `json:"modified"`
	ExpiredAt           *time.Time `json:"expired_at"`
}

const (
	ModeVerified         = "verified"
	ModeProfessional     = "professional"
	ModeNoIDProfessional = "no-id-professional"
)

var Modes = []string{ModeVerified, ModeProfessional, ModeNoIDProfessional}

// Причины обращения в поддержку

const (
	ReasonLearnerNew    = "LEARNER_NEW"
	ReasonCourseTeamNew = "COURSE_TEAM_NEW"
	ReasonLeave         = "LEAVE"
	ReasonChange        = "CHANGE"
	ReasonOther         = "OTHER"
)

var Reasons = []string{ReasonLearnerNew, ReasonCourseTeamNew, ReasonLeave, ReasonChange, ReasonOther}

func ValidMode(mode string) bool {
	return slices.Contains(Modes, mode)
}

func ValidReason(reason string) bool {
	return slices.Contains(Reasons, reason)
}

// Журнал действий поддержки

type SupportDetail struct {
	EntitlementUUID string    `json:"entitlement_uuid"`
	Action          string    `json:"action"`
	Reason          string    `json:"reason"`
	Comments        string    `json:"comments"`
	SupportUser     string    `json:"support_user"`
	Created         time.Time `json:"created"`
}

const (
	SupportActionCreate  = "CREATE"
	SupportActionReissue = "REISSUE"
)
