package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerStub struct {
	calls int
	err   error
}

func (r *runnerStub) RemindPending(ctx context.Context) (int, error) {
	r.calls++
	return 1, r.err
}

func TestRegisterReminders(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.RegisterReminders("", &runnerStub{}))
	assert.Zero(t, s.Entries())

	require.NoError(t, s.RegisterReminders("0 0 7 * * *", &runnerStub{}))
	assert.Equal(t, 1, s.Entries())

	require.Error(t, s.RegisterReminders("every morning", &runnerStub{}))
	assert.Equal(t, 1, s.Entries())
}

func TestRunRemindersSwallowsErrors(t *testing.T) {
	s := New(nil)
	runner := &runnerStub{err: errors.New("db down")}
	s.runReminders(runner)
	s.runReminders(&runnerStub{})
	assert.Equal(t, 1, runner.calls)
}

func TestStartStop(t *testing.T) {
	s := New(nil)
	s.Start()
	s.Stop()
}
