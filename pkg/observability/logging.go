package observability

import (
	"log/slog"

	"github.com/aretw0/fxforge/pkg/domain"
)

// LoggingHooks logs every lifecycle event to logger.
// Suppressed duplicates are logged at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLayerBuilt: func(e *domain.LayerEvent) {
			if e.Err != nil {
				logger.Warn("layer_built",
					"layer", e.Layer,
					"variant", e.Variant,
					"states", e.States,
					"err", e.Err,
				)
				return
			}
			logger.Info("layer_built",
				"layer", e.Layer,
				"variant", e.Variant,
				"states", e.States,
				"transitions", e.Transitions,
			)
		},
		OnControlInserted: func(e *domain.MenuEvent) {
			logger.Info("control_inserted", "menu_id", e.MenuID, "control", e.Control)
		},
		OnDuplicateSuppressed: func(e *domain.MenuEvent) {
			logger.Debug("duplicate_suppressed", "menu_id", e.MenuID, "control", e.Control)
		},
		OnPageAllocated: func(e *domain.MenuEvent) {
			logger.Info("page_allocated", "menu_id", e.MenuID, "control", e.Control, "page", e.Page)
		},
	}
}
