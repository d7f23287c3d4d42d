package with_test

import (
	"context"
	"sync"
)

// probeManager records its lifecycle so tests can assert the release
// contract: how many times it was entered and exited, with which cause,
// and in which order relative to other events.
type probeManager struct {
	value    string
	suppress bool
	enterErr error
	exitErr  error

	entered   int
	exited    int
	lastCause error

	log *eventLog
}

func (m *probeManager) Enter(ctx context.Context) (string, error) {
	if m.enterErr != nil {
		return "", m.enterErr
	}
	m.entered++
	m.log.append("enter")
	return m.value, nil
}

func (m *probeManager) Exit(ctx context.Context, cause error) (bool, error) {
	m.exited++
	m.lastCause = cause
	m.log.append("exit")
	return m.suppress, m.exitErr
}

// eventLog is an append-only ordered record shared between the test
// goroutine and producer goroutines. All appends are ordered by the
// generator's lockstep handoff, but the mutex keeps the race detector
// satisfied.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) append(e string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) snapshot() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}
