// Package state holds the entitlement support panel's state tree, the actions
// that change it and the pure reducers applying them.
package state

import "github.com/iurnickita/entitlementsupport/internal/model"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// Результаты поиска. Pending - номер последнего отправленного поиска
type Entitlements struct {
	Items   []model.Entitlement `json:"items"`
	Status  Status              `json:"status"`
	Error   string              `json:"error,omitempty"`
	Pending uint64              `json:"-"`
}

// Find returns the listed entitlement with the given uuid.
func (e Entitlements) Find(uuid string) (model.Entitlement, bool) {
	for _, item := range e.Items {
		if item.UUID == uuid {
			return item, true
		}
	}
	return model.Entitlement{}, false
}

// ActiveEntitlement is nil in create mode. It is shared between states and
// must not be written through. Session identifies the current opening of the
// modal; a closed modal has Session 0.
type Modal struct {
	ModalOpen         bool               `json:"modalOpen"`
	ActiveEntitlement *model.Entitlement `json:"activeEntitlement"`
	Status            Status             `json:"status"`
	Error             string             `json:"error,omitempty"`
	Session           uint64             `json:"-"`
}

type State struct {
	Entitlements Entitlements `json:"entitlements"`
	Modal        Modal        `json:"modal"`
}

func Initial() State {
	return State{
		Entitlements: Entitlements{
			Items:  []model.Entitlement{},
			Status: StatusIdle,
		},
		Modal: closedModal(),
	}
}

func closedModal() Modal {
	return Modal{Status: StatusIdle}
}
