package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurnickita/entitlementsupport/internal/model"
)

type unknownAction struct{}

func (unknownAction) Type() string { return "SOMETHING_ELSE" }
func (unknownAction) isAction()    {}

func entitlement(uuid string) model.Entitlement {
	created := time.Date(2018, 2, 1, 10, 53, 0, 0, time.UTC)
	return model.Entitlement{
		UUID:        uuid,
		User:        "learner",
		CourseUUID:  "course-" + uuid,
		Mode:        model.ModeVerified,
		OrderNumber: "EDX-" + uuid,
		Created:     created,
		Modified:    created,
	}
}

func TestFetchSuccessReplacesList(t *testing.T) {
	before := Entitlements{Items: []model.Entitlement{entitlement("old")}, Status: StatusIdle}
	e1, e2 := entitlement("e1"), entitlement("e2")

	after := ReduceEntitlements(before, FetchEntitlementsSuccess{Entitlements: []model.Entitlement{e1, e2}})

	require.Equal(t, []model.Entitlement{e1, e2}, after.Items)
	require.Equal(t, StatusIdle, after.Status)
	require.Equal(t, []model.Entitlement{entitlement("old")}, before.Items)
}

func TestFetchLifecycle(t *testing.T) {
	s := Initial().Entitlements

	s = ReduceEntitlements(s, FetchEntitlementsRequest{Seq: 1, Email: "a@b.com"})
	require.Equal(t, StatusLoading, s.Status)
	require.Equal(t, uint64(1), s.Pending)

	s = ReduceEntitlements(s, FetchEntitlementsFailure{Seq: 1, Err: errors.New("entitlement api status: 500")})
	require.Equal(t, StatusError, s.Status)
	require.Equal(t, "entitlement api status: 500", s.Error)
	require.Empty(t, s.Items)

	s = ReduceEntitlements(s, FetchEntitlementsRequest{Seq: 2, Email: "a@b.com"})
	require.Equal(t, StatusLoading, s.Status)
	require.Empty(t, s.Error)
}

func TestStaleFetchIgnored(t *testing.T) {
	s := Initial().Entitlements
	s = ReduceEntitlements(s, FetchEntitlementsRequest{Seq: 1})
	s = ReduceEntitlements(s, FetchEntitlementsRequest{Seq: 2})

	fresh := []model.Entitlement{entitlement("new")}
	s = ReduceEntitlements(s, FetchEntitlementsSuccess{Seq: 2, Entitlements: fresh})
	s = ReduceEntitlements(s, FetchEntitlementsSuccess{Seq: 1, Entitlements: []model.Entitlement{entitlement("stale")}})
	s = ReduceEntitlements(s, FetchEntitlementsFailure{Seq: 1, Err: errors.New("late")})

	assert.Equal(t, fresh, s.Items)
	assert.Equal(t, StatusIdle, s.Status)
}

func TestUpdateSuccessReplacesByUUID(t *testing.T) {
	items := []model.Entitlement{entitlement("u1"), entitlement("u2")}
	before := Entitlements{Items: items, Status: StatusIdle}

	updated := entitlement("u2")
	updated.Mode = model.ModeProfessional
	after := ReduceEntitlements(before, UpdateEntitlementSuccess{Entitlement: updated})

	assert.Equal(t, model.ModeProfessional, after.Items[1].Mode)
	assert.Equal(t, model.ModeVerified, items[1].Mode)

	missing := ReduceEntitlements(before, UpdateEntitlementSuccess{Entitlement: entitlement("u3")})
	assert.Equal(t, before, missing)
}

func TestCreateSuccessPrepends(t *testing.T) {
	before := Entitlements{Items: []model.Entitlement{entitlement("u1")}, Status: StatusIdle}
	after := ReduceEntitlements(before, CreateEntitlementSuccess{Entitlement: entitlement("u9")})

	require.Len(t, after.Items, 2)
	assert.Equal(t, "u9", after.Items[0].UUID)
	assert.Len(t, before.Items, 1)
}

func TestOpenReissueModal(t *testing.T) {
	e := entitlement("u2")
	m := ReduceModal(Initial().Modal, OpenReissueModal{Entitlement: e})

	require.True(t, m.ModalOpen)
	require.NotNil(t, m.ActiveEntitlement)
	require.Equal(t, e, *m.ActiveEntitlement)
}

func TestOpenCreationModalClearsActive(t *testing.T) {
	m := ReduceModal(Initial().Modal, OpenReissueModal{Entitlement: entitlement("u2")})
	m = ReduceModal(m, OpenCreationModal{})

	require.True(t, m.ModalOpen)
	require.Nil(t, m.ActiveEntitlement)
}

func TestCloseModalFromAnyState(t *testing.T) {
	closed := Modal{ModalOpen: false, ActiveEntitlement: nil, Status: StatusIdle}

	priors := []Modal{
		Initial().Modal,
		ReduceModal(Initial().Modal, OpenCreationModal{}),
		ReduceModal(Initial().Modal, OpenReissueModal{Entitlement: entitlement("u2")}),
		{ModalOpen: true, Status: StatusError, Error: "boom"},
	}
	for _, prior := range priors {
		once := ReduceModal(prior, CloseModal{})
		twice := ReduceModal(once, CloseModal{})
		assert.Equal(t, closed, once)
		assert.Equal(t, once, twice)
	}
}

func TestSubmitSuccessClosesModal(t *testing.T) {
	open := ReduceModal(Initial().Modal, OpenReissueModal{Entitlement: entitlement("u2")})

	for _, action := range []Action{
		UpdateEntitlementSuccess{Entitlement: entitlement("u2")},
		CreateEntitlementSuccess{Entitlement: entitlement("u9")},
	} {
		m := ReduceModal(open, action)
		assert.False(t, m.ModalOpen, action.Type())
		assert.Nil(t, m.ActiveEntitlement, action.Type())
	}
}

func TestSubmitFailureKeepsModalOpen(t *testing.T) {
	m := ReduceModal(Initial().Modal, OpenReissueModal{Entitlement: entitlement("u2")})
	m = ReduceModal(m, UpdateEntitlementRequest{EntitlementUUID: "u2"})
	require.Equal(t, StatusLoading, m.Status)

	m = ReduceModal(m, UpdateEntitlementFailure{Err: errors.New("entitlement api status: 400")})
	require.True(t, m.ModalOpen)
	require.Equal(t, StatusError, m.Status)
	require.Equal(t, "entitlement api status: 400", m.Error)
	require.Equal(t, "u2", m.ActiveEntitlement.UUID)

	closed := ReduceModal(Initial().Modal, CreateEntitlementFailure{Err: errors.New("late")})
	require.Equal(t, Initial().Modal, closed)
}

func TestLateSubmitIgnoredByNextModal(t *testing.T) {
	s := Initial()
	s = Reduce(s, FetchEntitlementsSuccess{Entitlements: []model.Entitlement{entitlement("u1")}})
	s = Reduce(s, OpenReissueModal{Session: 1, Entitlement: entitlement("u1")})
	s = Reduce(s, UpdateEntitlementRequest{Session: 1, EntitlementUUID: "u1"})
	s = Reduce(s, CloseModal{})
	s = Reduce(s, OpenCreationModal{Session: 2})

	// ответ на перевыпуск из закрытого окна
	failed := Reduce(s, UpdateEntitlementFailure{Session: 1, Err: errors.New("entitlement api status: 400")})
	require.Equal(t, s.Modal, failed.Modal)
	require.Equal(t, StatusIdle, failed.Modal.Status)
	require.Empty(t, failed.Modal.Error)

	// успех не закрывает чужое окно, но список обновляется
	updated := entitlement("u1")
	updated.Mode = model.ModeProfessional
	done := Reduce(s, UpdateEntitlementSuccess{Session: 1, Entitlement: updated})
	require.True(t, done.Modal.ModalOpen)
	require.Equal(t, uint64(2), done.Modal.Session)
	require.Equal(t, model.ModeProfessional, done.Entitlements.Items[0].Mode)

	// запрос и ошибка своей сессии применяются
	s = Reduce(s, CreateEntitlementRequest{Session: 2})
	require.Equal(t, StatusLoading, s.Modal.Status)
	s = Reduce(s, CreateEntitlementFailure{Session: 2, Err: errors.New("bad mode")})
	require.Equal(t, StatusError, s.Modal.Status)
	require.Equal(t, "bad mode", s.Modal.Error)

	// повторное открытие того же права - тоже новая сессия
	s = Reduce(s, OpenReissueModal{Session: 3, Entitlement: entitlement("u1")})
	s = Reduce(s, UpdateEntitlementFailure{Session: 1, Err: errors.New("late")})
	require.Equal(t, StatusIdle, s.Modal.Status)
}

func TestUnknownActionLeavesStateUnchanged(t *testing.T) {
	s := Initial()
	s = Reduce(s, FetchEntitlementsSuccess{Entitlements: []model.Entitlement{entitlement("u1")}})
	s = Reduce(s, OpenReissueModal{Entitlement: entitlement("u1")})

	next := Reduce(s, unknownAction{})
	require.Equal(t, s, next)
	require.Same(t, s.Modal.ActiveEntitlement, next.Modal.ActiveEntitlement)
	require.Same(t, &s.Entitlements.Items[0], &next.Entitlements.Items[0])
}

func TestReduceIsDeterministic(t *testing.T) {
	s := Initial()
	actions := []Action{
		FetchEntitlementsRequest{Seq: 1, Email: "a@b.com"},
		FetchEntitlementsSuccess{Seq: 1, Entitlements: []model.Entitlement{entitlement("u1"), entitlement("u2")}},
		OpenReissueModal{Entitlement: entitlement("u2")},
		UpdateEntitlementRequest{EntitlementUUID: "u2"},
		UpdateEntitlementSuccess{Entitlement: entitlement("u2")},
		OpenCreationModal{},
		CreateEntitlementFailure{Err: errors.New("bad mode")},
		CloseModal{},
	}
	for _, action := range actions {
		a := Reduce(s, action)
		b := Reduce(s, action)
		require.Equal(t, a, b, action.Type())
		s = a
	}

	require.Len(t, s.Entitlements.Items, 2)
	require.False(t, s.Modal.ModalOpen)
}
