package state

import "github.com/iurnickita/entitlementsupport/internal/model"

// Action is a closed set: only types in this package implement it.
type Action interface {
	Type() string
	isAction()
}

const (
	TypeFetchEntitlementsRequest = "FETCH_ENTITLEMENTS_REQUEST"
	TypeFetchEntitlementsSuccess = "FETCH_ENTITLEMENTS_SUCCESS"
	TypeFetchEntitlementsFailure = "FETCH_ENTITLEMENTS_FAILURE"
	TypeUpdateEntitlementRequest = "UPDATE_ENTITLEMENT_REQUEST"
	TypeUpdateEntitlementSuccess = "UPDATE_ENTITLEMENT_SUCCESS"
	TypeUpdateEntitlementFailure = "UPDATE_ENTITLEMENT_FAILURE"
	TypeCreateEntitlementRequest = "CREATE_ENTITLEMENT_REQUEST"
	TypeCreateEntitlementSuccess = "CREATE_ENTITLEMENT_SUCCESS"
	TypeCreateEntitlementFailure = "CREATE_ENTITLEMENT_FAILURE"
	TypeOpenReissueModal         = "OPEN_REISSUE_MODAL"
	TypeOpenCreationModal        = "OPEN_CREATION_MODAL"
	TypeCloseModal               = "CLOSE_MODAL"
)

// Поиск

type FetchEntitlementsRequest struct {
	Seq       uint64
	Email     string
	Username  string
	CourseKey string
}

type FetchEntitlementsSuccess struct {
	Seq          uint64
	Entitlements []model.Entitlement
}

type FetchEntitlementsFailure struct {
	Seq uint64
	Err error
}

// Перевыпуск. Session - номер окна, из которого отправлена форма

type UpdateEntitlementRequest struct {
	Session         uint64
	EntitlementUUID string
	Reason          string
	Comments        string
}

type UpdateEntitlementSuccess struct {
	Session     uint64
	Entitlement model.Entitlement
}

type UpdateEntitlementFailure struct {
	Session uint64
	Err     error
}

// Создание

type CreateEntitlementRequest struct {
	Session    uint64
	CourseUUID string
	User       string
	Mode       string
}

type CreateEntitlementSuccess struct {
	Session     uint64
	Entitlement model.Entitlement
}

type CreateEntitlementFailure struct {
	Session uint64
	Err     error
}

// Модальное окно. Каждое открытие получает новый Session

type OpenReissueModal struct {
	Session     uint64
	Entitlement model.Entitlement
}

type OpenCreationModal struct {
	Session uint64
}

type CloseModal struct{}

func (FetchEntitlementsRequest) Type() string { return TypeFetchEntitlementsRequest }
func (FetchEntitlementsSuccess) Type() string { return TypeFetchEntitlementsSuccess }
func (FetchEntitlementsFailure) Type() string { return TypeFetchEntitlementsFailure }
func (UpdateEntitlementRequest) Type() string { return TypeUpdateEntitlementRequest }
func (UpdateEntitlementSuccess) Type() string { return TypeUpdateEntitlementSuccess }
func (UpdateEntitlementFailure) Type() string { return TypeUpdateEntitlementFailure }
func (CreateEntitlementRequest) Type() string { return TypeCreateEntitlementRequest }
func (CreateEntitlementSuccess) Type() string { return TypeCreateEntitlementSuccess }
func (CreateEntitlementFailure) Type() string { return TypeCreateEntitlementFailure }
func (OpenReissueModal) Type() string         { return TypeOpenReissueModal }
func (OpenCreationModal) Type() string        { return TypeOpenCreationModal }
func (CloseModal) Type() string               { return TypeCloseModal }

func (FetchEntitlementsRequest) isAction() {}
func (FetchEntitlementsSuccess) isAction() {}
func (FetchEntitlementsFailure) isAction() {}
func (UpdateEntitlementRequest) isAction() {}
func (UpdateEntitlementSuccess) isAction() {}
func (UpdateEntitlementFailure) isAction() {}
func (CreateEntitlementRequest) isAction() {}
func (CreateEntitlementSuccess) isAction() {}
func (CreateEntitlementFailure) isAction() {}
func (OpenReissueModal) isAction()         {}
func (OpenCreationModal) isAction()        {}
func (CloseModal) isAction()               {}

// Err returns the error carried by a failure action, nil for any other action.
func Err(action Action) error {
	switch a := action.(type) {
	case FetchEntitlementsFailure:
		return a.Err
	case UpdateEntitlementFailure:
		return a.Err
	case CreateEntitlementFailure:
		return a.Err
	}
	return nil
}
