package saga

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompensateFunc undoes one committed step of a multi-record transition.
// It must be idempotent: an unwind pass may race a partially applied step.
type CompensateFunc func(ctx context.Context) error

type step struct {
	name       string
	compensate CompensateFunc
}

// Log is the compensation log for one in-flight lifecycle transition.
// Each successful step appends its reverse-action; on failure the log is
// unwound in LIFO order, on success it is discarded. A Log is confined to
// the goroutine running the transition and is not safe for concurrent use.
type Log struct {
	id     string
	op     string
	steps  []step
	logger *zap.Logger
}

func NewLog(op string, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{
		id:     uuid.NewString(),
		op:     op,
		logger: logger,
	}
}

// ID identifies this transition in logs and error reports.
func (l *Log) ID() string { return l.id }

// Record appends the reverse-action of a step that just committed.
func (l *Log) Record(name string, compensate CompensateFunc) {
	l.steps = append(l.steps, step{name: name, compensate: compensate})
	l.logger.Debug("step committed",
		zap.String("transition_id", l.id),
		zap.String("op", l.op),
		zap.String("step", name),
	)
}

// Len returns the number of committed steps awaiting discard or unwind.
func (l *Log) Len() int { return len(l.steps) }

// Unwind runs the recorded reverse-actions newest-first. It makes exactly
// one pass: a failing reverse-action is logged and collected, and the pass
// continues with the remaining steps. The joined error of every failed
// reverse-action is returned, nil if all succeeded.
func (l *Log) Unwind(ctx context.Context) error {
	var failed []error
	for i := len(l.steps) - 1; i >= 0; i-- {
		st := l.steps[i]
		if err := st.compensate(ctx); err != nil {
			l.logger.Error("compensation step failed",
				zap.String("transition_id", l.id),
				zap.String("op", l.op),
				zap.String("step", st.name),
				zap.Error(err),
			)
			failed = append(failed, fmt.Errorf("undo %s: %w", st.name, err))
		}
	}
	l.steps = nil
	return errors.Join(failed...)
}

// Discard drops the log after a fully committed transition.
func (l *Log) Discard() {
	l.steps = nil
	l.logger.Debug("transition committed",
		zap.String("transition_id", l.id),
		zap.String("op", l.op),
	)
}
