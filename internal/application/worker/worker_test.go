package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvisioner implements PageProvisioner for testing
type mockProvisioner struct {
	ensurePageFunc func(ctx context.Context) (string, bool, error)
	calls          atomic.Int32
}

func (m *mockProvisioner) EnsurePage(ctx context.Context) (string, bool, error) {
	m.calls.Add(1)
	if m.ensurePageFunc != nil {
		return m.ensurePageFunc(ctx)
	}
	return "doc-1", false, nil
}

func TestRunOnce(t *testing.T) {
	m := &mockProvisioner{ensurePageFunc: func(context.Context) (string, bool, error) {
		return "doc-1", true, nil
	}}
	w := New(m)

	require.NoError(t, w.RunOnce(context.Background()))
	assert.Equal(t, int32(1), m.calls.Load())
}

func TestRunOnce_WrapsError(t *testing.T) {
	cause := errors.New("notion unavailable")
	m := &mockProvisioner{ensurePageFunc: func(context.Context) (string, bool, error) {
		return "", false, cause
	}}

	err := New(m).RunOnce(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to ensure weekly document")
}

func TestNew_Options(t *testing.T) {
	w := New(&mockProvisioner{}, WithInterval(time.Minute), WithOperationTimeout(time.Second))
	assert.Equal(t, time.Minute, w.interval)
	assert.Equal(t, time.Second, w.operationTimeout)

	w = New(&mockProvisioner{}, WithInterval(0), WithOperationTimeout(-time.Second))
	assert.Equal(t, time.Hour, w.interval)
	assert.Equal(t, 2*time.Minute, w.operationTimeout)
}

func TestStart_RunsOnStartupAndTicks(t *testing.T) {
	m := &mockProvisioner{}
	w := New(m, WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return m.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestStart_StartupFailureDoesNotStopWorker(t *testing.T) {
	m := &mockProvisioner{ensurePageFunc: func(context.Context) (string, bool, error) {
		return "", false, errors.New("boom")
	}}
	w := New(m, WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return m.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
