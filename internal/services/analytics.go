package services

import (
	"github.com/tarotdaily/tarotdaily/internal/logging"
)

// AnalyticsSink accepts fire-and-forget named events. Callers never
// depend on delivery; implementations must not block or fail loudly.
type AnalyticsSink interface {
	Track(event string, props map[string]string)
}

// LogSink records analytics events as structured log lines.
type LogSink struct {
	logger *logging.Logger
}

func NewLogSink(logger *logging.Logger) *LogSink {
	if logger == nil {
		logger = logging.Default
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Track(event string, props map[string]string) {
	fields := map[string]interface{}{"event": event}
	for k, v := range props {
		fields[k] = v
	}
	s.logger.Info("Analytics event", fields)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Track(string, map[string]string) {}
