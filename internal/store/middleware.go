package store

import (
	"go.uber.org/zap"

	"github.com/iurnickita/entitlementsupport/internal/metrics"
	"github.com/iurnickita/entitlementsupport/internal/state"
)

// Logging логирует каждое действие, ошибки - с уровнем warn.
func Logging(zaplog *zap.Logger) Middleware {
	return func(next Dispatch) Dispatch {
		return func(action state.Action) {
			if err := state.Err(action); err != nil {
				zaplog.Warn("action failed",
					zap.String("type", action.Type()),
					zap.Error(err),
				)
			} else {
				zaplog.Debug("dispatch action",
					zap.String("type", action.Type()),
				)
			}
			next(action)
		}
	}
}

func Metrics() Middleware {
	return func(next Dispatch) Dispatch {
		return func(action state.Action) {
			next(action)
			metrics.ActionsDispatchedTotal.WithLabelValues(action.Type()).Inc()
		}
	}
}
