package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_UnwindRunsInLIFOOrder(t *testing.T) {
	l := NewLog("test.op", nil)

	var order []string
	l.Record("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	l.Record("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})
	l.Record("third", func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	err := l.Unwind(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, order)
	assert.Equal(t, 0, l.Len())
}

func TestLog_UnwindCollectsFailuresAndKeepsGoing(t *testing.T) {
	l := NewLog("test.op", nil)

	boom := errors.New("boom")
	var firstRan bool
	l.Record("first", func(ctx context.Context) error {
		firstRan = true
		return nil
	})
	l.Record("second", func(ctx context.Context) error {
		return boom
	})

	err := l.Unwind(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.True(t, firstRan, "a failing step must not stop the pass")
}

func TestLog_DiscardDropsSteps(t *testing.T) {
	l := NewLog("test.op", nil)

	var ran bool
	l.Record("only", func(ctx context.Context) error {
		ran = true
		return nil
	})
	l.Discard()

	assert.NoError(t, l.Unwind(context.Background()))
	assert.False(t, ran)
}

func TestLog_EmptyUnwindIsNoop(t *testing.T) {
	l := NewLog("test.op", nil)
	assert.NoError(t, l.Unwind(context.Background()))
	assert.NotEmpty(t, l.ID())
}
