package bus

import (
	"time"

	"github.com/zeusync/arena/internal/core/observability/log"
)

// LogObserver logs failed deliveries at warn and slow ones at debug.
type LogObserver struct {
	Logger log.Log
	Slow   time.Duration
}

func NewLogObserver(logger log.Log, slow time.Duration) *LogObserver {
	if logger == nil {
		logger = log.NewNop()
	}
	return &LogObserver{Logger: logger.With(log.String("component", "event_bus")), Slow: slow}
}

func (o *LogObserver) OnDelivered(eventType string, handlers int, err error, duration time.Duration) {
	switch {
	case err != nil:
		o.Logger.Warn("event delivery failed",
			log.String("event", eventType),
			log.Int("handlers", handlers),
			log.Error(err),
		)
	case o.Slow > 0 && duration > o.Slow:
		o.Logger.Debug("slow event delivery",
			log.String("event", eventType),
			log.Int("handlers", handlers),
			log.Duration("duration", duration),
		)
	}
}
