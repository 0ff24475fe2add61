package logger

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iurnickita/entitlementsupport/internal/logger/config"
)

func TestNewZapLog(t *testing.T) {
	zl, lvl, err := NewZapLog(config.Config{LogLevel: "debug"})
	require.NoError(t, err)
	require.True(t, zl.Core().Enabled(zap.DebugLevel))

	// уровень меняется без пересоздания логера
	lvl.SetLevel(zap.WarnLevel)
	require.False(t, zl.Core().Enabled(zap.InfoLevel))
	require.True(t, zl.Core().Enabled(zap.WarnLevel))

	_, _, err = NewZapLog(config.Config{LogLevel: "loud"})
	require.Error(t, err)
}

func TestRequestLogMdlw(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	var body string
	h := RequestLogMdlw(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusSeeOther)
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("email=a%40b.com"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	// тело запроса доступно хендлеру после логирования
	require.Equal(t, "email=a%40b.com", body)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	require.Equal(t, "/search", entries[0].ContextMap()["path"])
	require.Equal(t, "303", entries[1].ContextMap()["code"])
	require.Equal(t, "2", entries[1].ContextMap()["length"])
}
