package handler

import (
	"time"

	"github.com/iurnickita/entitlementsupport/internal/model"
	"github.com/iurnickita/entitlementsupport/internal/state"
)

// Проекции состояния в данные для шаблонов. Без собственной логики и состояния

const (
	titleReissue = "Re-issue Entitlement"
	titleCreate  = "Create Entitlement"
	timeLayout   = "2006-01-02 15:04"
)

var entitlementColumns = []string{
	"User",
	"Entitlement",
	"Course uuid",
	"Enrollment",
	"Expired At",
	"Created",
	"Modified",
	"Mode",
	"Order",
	"Actions",
}

type pageProps struct {
	Loading bool
	Search  searchProps
	Table   tableProps
	Modal   modalProps
}

type searchProps struct {
	Loading bool
	Error   string
}

type tableProps struct {
	Columns      []string
	Rows         []rowProps
	ReissueLabel string
}

type rowProps struct {
	UUID        string
	User        string
	CourseUUID  string
	Enrollment  string
	ExpiredAt   string
	Created     string
	Modified    string
	Mode        string
	OrderNumber string
}

type modalProps struct {
	Open        bool
	Title       string
	Reissue     bool
	Entitlement rowProps
	Reasons     []string
	Modes       []string
	Loading     bool
	Error       string
	History     []historyProps
}

type historyProps struct {
	Created     string
	Action      string
	Reason      string
	Comments    string
	SupportUser string
}

func mapPage(s state.State) pageProps {
	loading := s.Entitlements.Status == state.StatusLoading || s.Modal.Status == state.StatusLoading
	return pageProps{
		Loading: loading,
		Search:  mapSearch(s.Entitlements),
		Table:   mapTable(s.Entitlements),
		Modal:   mapModal(s.Modal),
	}
}

func mapSearch(e state.Entitlements) searchProps {
	return searchProps{
		Loading: e.Status == state.StatusLoading,
		Error:   e.Error,
	}
}

func mapTable(e state.Entitlements) tableProps {
	rows := make([]rowProps, 0, len(e.Items))
	for _, item := range e.Items {
		rows = append(rows, mapRow(item))
	}
	return tableProps{
		Columns:      entitlementColumns,
		Rows:         rows,
		ReissueLabel: titleReissue,
	}
}

func mapRow(e model.Entitlement) rowProps {
	row := rowProps{
		UUID:        e.UUID,
		User:        e.User,
		CourseUUID:  e.CourseUUID,
		Created:     formatTime(e.Created),
		Modified:    formatTime(e.Modified),
		Mode:        e.Mode,
		OrderNumber: e.OrderNumber,
	}
	if e.EnrollmentCourseRun != nil {
		row.Enrollment = *e.EnrollmentCourseRun
	}
	if e.ExpiredAt != nil {
		row.ExpiredAt = formatTime(*e.ExpiredAt)
	}
	return row
}

func mapModal(m state.Modal) modalProps {
	props := modalProps{
		Open:    m.ModalOpen,
		Title:   titleCreate,
		Reasons: model.Reasons,
		Modes:   model.Modes,
		Loading: m.Status == state.StatusLoading,
		Error:   m.Error,
	}
	if m.ActiveEntitlement != nil {
		props.Title = titleReissue
		props.Reissue = true
		props.Entitlement = mapRow(*m.ActiveEntitlement)
	}
	return props
}

func mapHistory(details []model.SupportDetail) []historyProps {
	history := make([]historyProps, 0, len(details))
	for _, d := range details {
		history = append(history, historyProps{
			Created:     formatTime(d.Created),
			Action:      d.Action,
			Reason:      d.Reason,
			Comments:    d.Comments,
			SupportUser: d.SupportUser,
		})
	}
	return history
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
