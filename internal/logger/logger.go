package logger

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iurnickita/entitlementsupport/internal/logger/config"
)

// NewZapLog builds the production logger. The returned level is shared with
// the logger, so changing it (the panel serves it at /debug/loglevel) takes
// effect without a restart.
const serviceName = "entitlementsupport"

func NewZapLog(cfg config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, lvl, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	zapcfg := zap.NewProductionConfig()
	zapcfg.Level = lvl
	zapcfg.EncoderConfig.TimeKey = "time"
	zapcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapcfg.InitialFields = map[string]interface{}{"service": serviceName}

	zl, err := zapcfg.Build()
	if err != nil {
		return nil, lvl, err
	}
	return zl, lvl, nil
}

// middleware-логер для входящих HTTP-запросов.
func RequestLogMdlw(zaplog *zap.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			// request body
			bodyBytes, _ := io.ReadAll(r.Body)
			r.Body.Close() //  must close
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

			zaplog.Info("got incoming HTTP request",
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.String("body", string(bodyBytes)),
			)

			wl := NewResponseWriterLogger(w)

			handlerStart := time.Now()
			h.ServeHTTP(wl, r)
			handlerDuration := time.Since(handlerStart)

			zaplog.Info("send HTTP response",
				zap.String("code", strconv.Itoa(wl.statusCode)),
				zap.String("length", strconv.Itoa(wl.length)),
				zap.String("duration", handlerDuration.String()),
			)
		})
	}
}

type responseWriterLogger struct {
	http.ResponseWriter
	statusCode int
	length     int
}

func NewResponseWriterLogger(w http.ResponseWriter) *responseWriterLogger {
	return &responseWriterLogger{w, http.StatusOK, 0}
}

func (wl *responseWriterLogger) WriteHeader(code int) {
	wl.statusCode = code
	wl.ResponseWriter.WriteHeader(code)
}

func (wl *responseWriterLogger) Write(b []byte) (n int, err error) {
	n, err = wl.ResponseWriter.Write(b)
	wl.length += n
	return
}
