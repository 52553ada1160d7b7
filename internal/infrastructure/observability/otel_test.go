package observability

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_Disabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	providers, logger, err := Setup(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.Same(t, logger, slog.Default())
	assert.Equal(t, providers.Tracer, otel.GetTracerProvider())
	assert.NoError(t, providers.Shutdown(time.Second))
}

func TestInitLogger_DefaultsServiceName(t *testing.T) {
	lp, logger, err := InitLogger(context.Background(), Config{})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, lp.Shutdown(context.Background()))
}
