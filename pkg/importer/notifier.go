package importer

import (
	"context"

	"github.com/robinjoseph08/golib/logger"
)

// Notifier surfaces user-visible messages about an import: per-entity
// failures, skipped creators, and final summaries. No caught failure goes
// unvoiced.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// logNotifier routes notifications through the structured logger. The CLI
// installs its own stdout notifier; this is the fallback.
type logNotifier struct{}

func (logNotifier) Notify(ctx context.Context, message string) {
	logger.FromContext(ctx).Info("notice", logger.Data{"message": message})
}
