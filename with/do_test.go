package with_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/with_ive_go/shared/panics"
	"github.com/on-the-ground/with_ive_go/with"
)

func TestDo_ReturnsActionResult(t *testing.T) {
	ctx := context.Background()
	m := &probeManager{value: "resource", log: &eventLog{}}

	res, err := with.Do(ctx, m, func(ctx context.Context, v string) (string, error) {
		m.log.append("action")
		return v + "-used", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "resource-used", res)

	assert.Equal(t, 1, m.entered)
	assert.Equal(t, 1, m.exited)
	assert.Nil(t, m.lastCause)
	assert.Equal(t, []string{"enter", "action", "exit"}, m.log.snapshot())
}

func TestDo_PropagatesActionErrorUnchanged(t *testing.T) {
	ctx := context.Background()
	m := &probeManager{}
	cause := errors.New("some error")

	_, err := with.Do(ctx, m, func(ctx context.Context, _ string) (int, error) {
		return 0, cause
	})
	// Identity, not just equality: the manager saw it and it came back as-is.
	if err != cause {
		t.Fatalf("expected the original error, got: %v", err)
	}
	assert.Equal(t, 1, m.exited)
	if m.lastCause != cause {
		t.Fatalf("expected exit to receive the original error, got: %v", m.lastCause)
	}
}

func TestDo_SuppressedErrorReturnsEmptyResult(t *testing.T) {
	ctx := context.Background()
	m := &probeManager{suppress: true}

	res, err := with.Do(ctx, m, func(ctx context.Context, _ string) (int, error) {
		return 42, errors.New("swallowed")
	})
	require.NoError(t, err)
	assert.Zero(t, res)
	assert.Equal(t, 1, m.exited)
}

func TestDo_SuppressionIgnoredOnCleanExit(t *testing.T) {
	ctx := context.Background()
	m := &probeManager{suppress: true}

	res, err := with.Do(ctx, m, func(ctx context.Context, _ string) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, res)
}

func TestDo_EnterFailureSkipsExit(t *testing.T) {
	ctx := context.Background()
	enterErr := errors.New("acquire failed")
	m := &probeManager{enterErr: enterErr}

	called := false
	_, err := with.Do(ctx, m, func(ctx context.Context, _ string) (int, error) {
		called = true
		return 0, nil
	})
	require.ErrorIs(t, err, enterErr)
	assert.False(t, called)
	assert.Equal(t, 0, m.exited)
}

func TestDo_ExitFailureMasksActionError(t *testing.T) {
	ctx := context.Background()
	exitErr := errors.New("release failed")
	m := &probeManager{exitErr: exitErr}
	cause := errors.New("action failed")

	_, err := with.Do(ctx, m, func(ctx context.Context, _ string) (int, error) {
		return 0, cause
	})
	require.ErrorIs(t, err, exitErr)
	assert.NotErrorIs(t, err, cause)
	if m.lastCause != cause {
		t.Fatalf("expected exit to receive the action error, got: %v", m.lastCause)
	}
}

func TestDo_ExitFailureAfterSuccess(t *testing.T) {
	ctx := context.Background()
	exitErr := errors.New("release failed")
	m := &probeManager{exitErr: exitErr}

	res, err := with.Do(ctx, m, func(ctx context.Context, _ string) (int, error) {
		return 42, nil
	})
	require.ErrorIs(t, err, exitErr)
	assert.Zero(t, res)
	assert.Nil(t, m.lastCause)
}

func TestDo_PanicReachesExitAndRepanics(t *testing.T) {
	ctx := context.Background()
	m := &probeManager{}
	boom := fmt.Errorf("boom")

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected the panic to be re-raised")
		if r != boom {
			t.Fatalf("expected the original panic value, got: %v", r)
		}
		assert.Equal(t, 1, m.exited)

		var pe *panics.Error
		require.ErrorAs(t, m.lastCause, &pe)
		require.ErrorIs(t, m.lastCause, boom)
		assert.NotEmpty(t, pe.Stack)
	}()

	_, _ = with.Do(ctx, m, func(ctx context.Context, _ string) (int, error) {
		panic(boom)
	})
}

func TestDo_SuppressedPanicSwallowed(t *testing.T) {
	ctx := context.Background()
	m := &probeManager{suppress: true}

	res, err := with.Do(ctx, m, func(ctx context.Context, _ string) (int, error) {
		panic("swallowed")
	})
	require.NoError(t, err)
	assert.Zero(t, res)
	assert.Equal(t, 1, m.exited)
}
