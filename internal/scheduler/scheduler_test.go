package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu      sync.Mutex
	calls   int
	now     time.Time
	window  time.Duration
	failing bool
}

func (f *fakeNotifier) NotifyDueSoon(now time.Time, window time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.now = now
	f.window = window
	if f.failing {
		return 0, errors.New("database unavailable")
	}
	return 2, nil
}

func TestRunDueSoon_PassesClockAndWindow(t *testing.T) {
	notifier := &fakeNotifier{}
	s := New(notifier, 72*time.Hour)
	fixed := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.RunDueSoon()

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, fixed, notifier.now)
	assert.Equal(t, 72*time.Hour, notifier.window)
}

func TestRunDueSoon_FailureIsLogged(t *testing.T) {
	notifier := &fakeNotifier{failing: true}
	s := New(notifier, time.Hour)

	assert.NotPanics(t, s.RunDueSoon)
	assert.Equal(t, 1, notifier.calls)
}

func TestStart_Specs(t *testing.T) {
	for _, spec := range []string{"0 9 * * *", "0 0 9 * * *", "@daily"} {
		s := New(&fakeNotifier{}, time.Hour)
		require.NoError(t, s.Start(spec), spec)
		<-s.Stop().Done()
	}

	s := New(&fakeNotifier{}, time.Hour)
	assert.Error(t, s.Start("every morning"))
}
