package logging

import (
	"context"
	"regportal/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEntriesBecomeFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := newZapLogger(zap.New(core))

	log.Info(context.Background(), "User registered.", logging.Entry("userId", "user-1"), logging.Entry("n", 2))
	log.Error(context.Background(), "Failed.", logging.Entry("err", "boom"))

	entries := observed.All()
	require.Len(t, entries, 2)

	require.Equal(t, "User registered.", entries[0].Message)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, map[string]interface{}{"userId": "user-1", "n": int64(2)}, entries[0].ContextMap())

	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	require.Equal(t, "boom", entries[1].ContextMap()["err"])
}

func TestPasswordsAreMasked(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := newZapLogger(zap.New(core))

	log.Debug(context.Background(), "Debug.", logging.Entry("password", maskedSecret("secret")))

	require.Equal(t, "***", observed.All()[0].ContextMap()["password"])
}

type maskedSecret string

func (s maskedSecret) String() string {
	return "***"
}
