package logger

import (
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/villains-api/internal/config"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, int(tracelog.LogLevelDebug), GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, int(tracelog.LogLevelInfo), GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, int(tracelog.LogLevelWarn), GetPgxTraceLogLevel(zerolog.WarnLevel))
	assert.Equal(t, int(tracelog.LogLevelError), GetPgxTraceLogLevel(zerolog.FatalLevel))
	assert.Equal(t, int(tracelog.LogLevelNone), GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestLoggerService_DisabledWithoutLicense(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, ls.GetApplication())
	ls.Shutdown()

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	nilService.Shutdown()
}

func TestNewLoggerWithService_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	l := NewLoggerWithService(cfg, nil)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	assert.Equal(t, zerolog.DebugLevel, NewLogger("debug", false).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger("bogus", true).GetLevel())
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	base := zerolog.Nop()
	got := WithTraceContext(base, nil)
	assert.Equal(t, base.GetLevel(), got.GetLevel())
}
