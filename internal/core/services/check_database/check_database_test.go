package checkdatabase

import (
	"context"
	"errors"
	"regportal/internal/core/domain/health"
	"regportal/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPingSucceeded(t *testing.T) {
	pinger := health.NewFakePinger("MongoDB", nil)
	service := New(logging.NewFakeLogger(), pinger)

	result, err := service.Run(context.Background(), Input{})

	require.NoError(t, err)
	require.Equal(t, "MongoDB", result.Database)
	require.Equal(t, 1, pinger.Pinged)
}

func TestPingFailed(t *testing.T) {
	pingErr := errors.New("connection refused")
	log := logging.NewFakeLogger()
	service := New(log, health.NewFakePinger("PostgreSQL", pingErr))

	result, err := service.Run(context.Background(), Input{})

	require.ErrorIs(t, err, pingErr)
	require.Equal(t, "PostgreSQL", result.Database)
	require.Equal(t, 1, log.CountLevel(logging.WARNING))
}
