package youtube

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedplay/server/internal/adapter"
)

type fakeSender struct {
	mu       sync.Mutex
	commands []adapter.Command
}

func (s *fakeSender) SendCommand(cmd adapter.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)
	return nil
}

func (s *fakeSender) sent() []adapter.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]adapter.Command, len(s.commands))
	copy(out, s.commands)
	return out
}

func (s *fakeSender) countAction(action adapter.Action) int {
	n := 0
	for _, cmd := range s.sent() {
		if cmd.Action == action {
			n++
		}
	}
	return n
}

func TestSeekBeforeReadyIsDeferredAndReplayedOnce(t *testing.T) {
	sender := &fakeSender{}
	a := New(sender)

	require.NoError(t, a.Seek(42))
	assert.Empty(t, sender.sent(), "seek before ready must not reach the backend")

	events := a.HandleRawEvent(adapter.RawEvent{Name: "ready"})
	require.Len(t, events, 1)
	assert.Equal(t, adapter.EventReady, events[0].Type)

	sent := sender.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, adapter.ActionSeek, sent[0].Action)
	assert.Equal(t, 42.0, sent[0].Value)

	// a second ready-like signal must not replay the seek
	events = a.HandleRawEvent(adapter.RawEvent{Name: "ready"})
	assert.Empty(t, events)
	assert.Equal(t, 1, sender.countAction(adapter.ActionSeek))
}

func TestSeekAfterReadyIsImmediate(t *testing.T) {
	sender := &fakeSender{}
	a := New(sender)

	a.HandleRawEvent(adapter.RawEvent{Name: "ready"})
	require.NoError(t, a.Seek(30))

	sent := sender.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, adapter.ActionSeek, sent[0].Action)
}

func TestDeferredSeekKeepsLatestTarget(t *testing.T) {
	sender := &fakeSender{}
	a := New(sender)

	require.NoError(t, a.Seek(10))
	require.NoError(t, a.Seek(55))
	a.HandleRawEvent(adapter.RawEvent{Name: "ready"})

	sent := sender.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, 55.0, sent[0].Value)
}

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code    int
		message string
	}{
		{2, "Invalid video ID."},
		{100, "Video not found or private."},
		{101, "Video embedding has been disabled by the owner."},
		{150, "Video embedding has been disabled by the owner."},
		{5, genericErrorMessage},
		{9999, genericErrorMessage},
	}

	for _, tt := range tests {
		sender := &fakeSender{}
		a := New(sender)
		events := a.HandleRawEvent(adapter.RawEvent{Name: "error", Code: tt.code})
		require.Len(t, events, 1, "code %d", tt.code)
		assert.Equal(t, adapter.EventError, events[0].Type)
		assert.Equal(t, tt.message, events[0].Message, "code %d", tt.code)
	}
}

func TestPollingRunsOnlyWhilePlaying(t *testing.T) {
	sender := &fakeSender{}
	a := NewWithPollInterval(sender, 10*time.Millisecond)
	defer a.Close()

	events := a.HandleRawEvent(adapter.RawEvent{Name: "state_change", Code: statePlaying})
	require.Len(t, events, 1)
	assert.Equal(t, adapter.EventPlayingChanged, events[0].Type)
	assert.True(t, events[0].IsPlaying)

	assert.Eventually(t, func() bool {
		return sender.countAction(adapter.ActionReportTime) >= 2
	}, time.Second, 5*time.Millisecond, "poller must request time reports while playing")

	events = a.HandleRawEvent(adapter.RawEvent{Name: "state_change", Code: 2})
	require.Len(t, events, 1)
	assert.False(t, events[0].IsPlaying)

	reported := sender.countAction(adapter.ActionReportTime)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, reported, sender.countAction(adapter.ActionReportTime), "poller must stop when paused")
}

func TestRepeatedPlayingStateDoesNotDuplicateEvents(t *testing.T) {
	sender := &fakeSender{}
	a := NewWithPollInterval(sender, time.Hour)
	defer a.Close()

	first := a.HandleRawEvent(adapter.RawEvent{Name: "state_change", Code: statePlaying})
	second := a.HandleRawEvent(adapter.RawEvent{Name: "state_change", Code: statePlaying})
	assert.Len(t, first, 1)
	assert.Empty(t, second)
}

func TestVolumeRescaling(t *testing.T) {
	sender := &fakeSender{}
	a := New(sender)

	require.NoError(t, a.SetVolume(0.5))
	sent := sender.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, adapter.ActionSetVolume, sent[0].Action)
	assert.Equal(t, 50.0, sent[0].Value)

	events := a.HandleRawEvent(adapter.RawEvent{Name: "volume_change", Volume: 80, Muted: true})
	require.Len(t, events, 1)
	assert.Equal(t, 0.8, events[0].Volume)
	assert.True(t, events[0].IsMuted)

	assert.Error(t, a.SetVolume(1.5))
}

func TestCurrentTimeTranslatesToTimeUpdate(t *testing.T) {
	sender := &fakeSender{}
	a := New(sender)

	events := a.HandleRawEvent(adapter.RawEvent{Name: "current_time", Position: 73.5})
	require.Len(t, events, 1)
	assert.Equal(t, adapter.EventTimeUpdate, events[0].Type)
	assert.Equal(t, 73.5, events[0].Position)
}
