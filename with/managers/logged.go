package managers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/with_ive_go/with"
	"github.com/on-the-ground/with_ive_go/with/internal/registry"
)

const numScopeShards = 16

var openScopes = registry.New[ScopeInfo](numScopeShards)

// ScopeInfo describes a currently held logged scope.
type ScopeInfo struct {
	ID    string
	Name  string
	Since time.Time
}

// OpenScopes snapshots the logged scopes currently held. A non-empty
// result after all scopes should have ended points at a leaked scope —
// an Iterate generator that was neither drained nor closed, usually.
func OpenScopes() []ScopeInfo {
	return openScopes.Values()
}

// Logged wraps a manager with scope-lifecycle logging. Each entered
// scope gets a fresh uuid, is registered in the live-scope table while
// held, and emits debug logs on enter and exit with the outcome.
//
// The returned manager is safe only for one scope at a time — NEVER
// share it across goroutines.
func Logged[V any](m with.Manager[V], logger *zap.Logger, name string) with.Manager[V] {
	lm := &loggedManager[V]{inner: m, logger: logger, name: name}
	return lm
}

type loggedManager[V any] struct {
	inner  with.Manager[V]
	logger *zap.Logger
	name   string

	id    string
	since time.Time
}

func (lm *loggedManager[V]) Enter(ctx context.Context) (V, error) {
	value, err := lm.inner.Enter(ctx)
	if err != nil {
		lm.logger.Debug("failed to enter scope",
			zap.String("scope", lm.name),
			zap.Error(err),
		)
		var zero V
		return zero, err
	}

	lm.id = uuid.New().String()
	lm.since = time.Now()
	openScopes.Put(lm.id, ScopeInfo{ID: lm.id, Name: lm.name, Since: lm.since})

	lm.logger.Debug("entered scope",
		zap.String("scope", lm.name),
		zap.String("scopeId", lm.id),
	)
	return value, nil
}

func (lm *loggedManager[V]) Exit(ctx context.Context, cause error) (bool, error) {
	openScopes.Delete(lm.id)

	suppressed, err := lm.inner.Exit(ctx, cause)
	lm.logger.Debug("exited scope",
		zap.String("scope", lm.name),
		zap.String("scopeId", lm.id),
		zap.Duration("held", time.Since(lm.since)),
		zap.NamedError("cause", cause),
		zap.Bool("suppressed", suppressed),
		zap.Error(err),
	)
	return suppressed, err
}
