package state

import "github.com/iurnickita/entitlementsupport/internal/model"

// Reducer maps the current state and an action to the next state.
type Reducer func(State, Action) State

// Reduce is the root reducer: each slice is reduced independently.
func Reduce(s State, action Action) State {
	return State{
		Entitlements: ReduceEntitlements(s.Entitlements, action),
		Modal:        ReduceModal(s.Modal, action),
	}
}

// ReduceEntitlements never writes into the backing array of s.Items.
func ReduceEntitlements(s Entitlements, action Action) Entitlements {
	switch a := action.(type) {
	case FetchEntitlementsRequest:
		// более новый поиск уже отправлен
		if a.Seq < s.Pending {
			return s
		}
		s.Status = StatusLoading
		s.Error = ""
		s.Pending = a.Seq
	case FetchEntitlementsSuccess:
		// ответ на устаревший поиск
		if a.Seq != s.Pending {
			return s
		}
		s.Items = append([]model.Entitlement{}, a.Entitlements...)
		s.Status = StatusIdle
		s.Error = ""
	case FetchEntitlementsFailure:
		if a.Seq != s.Pending {
			return s
		}
		s.Status = StatusError
		s.Error = errMessage(a.Err)
	case UpdateEntitlementSuccess:
		for i, item := range s.Items {
			if item.UUID == a.Entitlement.UUID {
				items := append([]model.Entitlement{}, s.Items...)
				items[i] = a.Entitlement
				s.Items = items
				break
			}
		}
	case CreateEntitlementSuccess:
		items := make([]model.Entitlement, 0, len(s.Items)+1)
		items = append(items, a.Entitlement)
		s.Items = append(items, s.Items...)
	}
	return s
}

func ReduceModal(s Modal, action Action) Modal {
	switch a := action.(type) {
	case OpenReissueModal:
		active := a.Entitlement
		return Modal{ModalOpen: true, ActiveEntitlement: &active, Status: StatusIdle, Session: a.Session}
	case OpenCreationModal:
		return Modal{ModalOpen: true, Status: StatusIdle, Session: a.Session}
	case CloseModal:
		return closedModal()
	case UpdateEntitlementSuccess:
		if s.current(a.Session) {
			return closedModal()
		}
	case CreateEntitlementSuccess:
		if s.current(a.Session) {
			return closedModal()
		}
	case UpdateEntitlementRequest:
		return s.loading(a.Session)
	case CreateEntitlementRequest:
		return s.loading(a.Session)
	case UpdateEntitlementFailure:
		return s.failed(a.Session, a.Err)
	case CreateEntitlementFailure:
		return s.failed(a.Session, a.Err)
	}
	return s
}

// current reports whether an action sent from modal session belongs to the
// modal that is open now. Late answers for a closed or reopened modal are
// dropped.
func (m Modal) current(session uint64) bool {
	return m.ModalOpen && m.Session == session
}

func (m Modal) loading(session uint64) Modal {
	if m.current(session) {
		m.Status = StatusLoading
		m.Error = ""
	}
	return m
}

func (m Modal) failed(session uint64, err error) Modal {
	if m.current(session) {
		m.Status = StatusError
		m.Error = errMessage(err)
	}
	return m
}

func errMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
