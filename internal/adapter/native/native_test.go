package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedplay/server/internal/adapter"
)

type fakeSender struct {
	commands []adapter.Command
}

func (s *fakeSender) SendCommand(cmd adapter.Command) error {
	s.commands = append(s.commands, cmd)
	return nil
}

func TestTimeUpdatePassthrough(t *testing.T) {
	a := New(&fakeSender{})

	events := a.HandleRawEvent(adapter.RawEvent{Name: "timeupdate", Position: 12.25})
	require.Len(t, events, 1)
	assert.Equal(t, adapter.EventTimeUpdate, events[0].Type)
	assert.Equal(t, 12.25, events[0].Position)
}

func TestSeekDeferredUntilCanPlay(t *testing.T) {
	sender := &fakeSender{}
	a := New(sender)

	require.NoError(t, a.Seek(90))
	assert.Empty(t, sender.commands)

	events := a.HandleRawEvent(adapter.RawEvent{Name: "canplay"})
	require.Len(t, events, 1)
	assert.Equal(t, adapter.EventReady, events[0].Type)
	require.Len(t, sender.commands, 1)
	assert.Equal(t, adapter.ActionSeek, sender.commands[0].Action)
	assert.Equal(t, 90.0, sender.commands[0].Value)

	// canplay refires after seeks; must not re-emit ready or replay the seek
	events = a.HandleRawEvent(adapter.RawEvent{Name: "canplay"})
	assert.Empty(t, events)
	assert.Len(t, sender.commands, 1)
}

func TestPlayPauseTransitions(t *testing.T) {
	a := New(&fakeSender{})

	events := a.HandleRawEvent(adapter.RawEvent{Name: "play"})
	require.Len(t, events, 1)
	assert.True(t, events[0].IsPlaying)

	// duplicate play is swallowed
	assert.Empty(t, a.HandleRawEvent(adapter.RawEvent{Name: "play"}))

	events = a.HandleRawEvent(adapter.RawEvent{Name: "pause"})
	require.Len(t, events, 1)
	assert.False(t, events[0].IsPlaying)

	a.HandleRawEvent(adapter.RawEvent{Name: "play"})
	events = a.HandleRawEvent(adapter.RawEvent{Name: "ended"})
	require.Len(t, events, 1)
	assert.False(t, events[0].IsPlaying)
}

func TestMediaErrorMapping(t *testing.T) {
	tests := []struct {
		code    int
		message string
	}{
		{2, "A network error interrupted video loading."},
		{4, "The video format is not supported or the source is unreachable."},
		{42, genericErrorMessage},
	}

	for _, tt := range tests {
		a := New(&fakeSender{})
		events := a.HandleRawEvent(adapter.RawEvent{Name: "error", Code: tt.code})
		require.Len(t, events, 1)
		assert.Equal(t, tt.message, events[0].Message)
	}
}

func TestToggleMuteFollowsReportedState(t *testing.T) {
	sender := &fakeSender{}
	a := New(sender)

	require.NoError(t, a.ToggleMute())
	require.Len(t, sender.commands, 1)
	assert.Equal(t, adapter.ActionMute, sender.commands[0].Action)

	a.HandleRawEvent(adapter.RawEvent{Name: "volumechange", Volume: 0.8, Muted: true})
	require.NoError(t, a.ToggleMute())
	require.Len(t, sender.commands, 2)
	assert.Equal(t, adapter.ActionUnmute, sender.commands[1].Action)
}

func TestLoadStartResetsReadiness(t *testing.T) {
	a := New(&fakeSender{})

	a.HandleRawEvent(adapter.RawEvent{Name: "canplay"})
	assert.True(t, a.Ready())

	events := a.HandleRawEvent(adapter.RawEvent{Name: "loadstart"})
	require.Len(t, events, 1)
	assert.Equal(t, adapter.EventLoadStart, events[0].Type)
	assert.False(t, a.Ready())
}
