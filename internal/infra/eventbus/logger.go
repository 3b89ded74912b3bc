package eventbus

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/samber/lo"
)

// Compile-time interface check
var _ watermill.LoggerAdapter = (*KratosLoggerAdapter)(nil)

// KratosLoggerAdapter routes Watermill logs through a kratos logger.
type KratosLoggerAdapter struct {
	logger *log.Helper
	fields watermill.LogFields
}

// NewKratosLoggerAdapter creates a new Watermill logger adapter.
func NewKratosLoggerAdapter(logger log.Logger) watermill.LoggerAdapter {
	return &KratosLoggerAdapter{
		logger: log.NewHelper(log.With(logger, "module", "eventbus")),
		fields: watermill.LogFields{},
	}
}

func (l *KratosLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.log(log.LevelError, msg, fields, err)
}

func (l *KratosLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.log(log.LevelInfo, msg, fields, nil)
}

func (l *KratosLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.log(log.LevelDebug, msg, fields, nil)
}

// Trace is logged at debug level; kratos has no trace level.
func (l *KratosLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.log(log.LevelDebug, msg, fields, nil)
}

func (l *KratosLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &KratosLoggerAdapter{
		logger: l.logger,
		fields: lo.Assign(l.fields, fields),
	}
}

func (l *KratosLoggerAdapter) log(level log.Level, msg string, fields watermill.LogFields, err error) {
	merged := lo.Assign(l.fields, fields)

	keyvals := make([]interface{}, 0, len(merged)*2+4)
	keyvals = append(keyvals, "msg", msg)
	for k, v := range merged {
		keyvals = append(keyvals, k, v)
	}
	if err != nil {
		keyvals = append(keyvals, "error", err)
	}

	l.logger.Log(level, keyvals...)
}
