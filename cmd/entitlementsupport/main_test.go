package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iurnickita/entitlementsupport/internal/model"
	"github.com/iurnickita/entitlementsupport/internal/state"
	"github.com/iurnickita/entitlementsupport/internal/store"
)

func TestLogStateChange(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	s := store.New(state.Reduce, state.Initial())
	t.Cleanup(s.Close)
	unsubscribe := s.Subscribe(logStateChange(zap.New(core)))

	s.Dispatch(state.FetchEntitlementsSuccess{Entitlements: []model.Entitlement{{UUID: "u1"}}})
	s.Dispatch(state.OpenCreationModal{Session: 1})

	entries := logs.FilterMessage("state changed").AllUntimed()
	require.Len(t, entries, 2)
	require.Equal(t, int64(1), entries[0].ContextMap()["entitlements"])
	require.Equal(t, "idle", entries[0].ContextMap()["entitlements_status"])
	require.Equal(t, true, entries[1].ContextMap()["modal_open"])

	// после отписки записей нет
	unsubscribe()
	s.Dispatch(state.CloseModal{})
	require.Equal(t, 2, logs.FilterMessage("state changed").Len())
}
