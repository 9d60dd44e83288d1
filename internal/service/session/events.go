package session

import (
	"context"
	"fmt"

	"github.com/embedplay/server/internal/adapter"
)

type HandlePlayerEventParams struct {
	SessionId string
	Raw       adapter.RawEvent
}

type HandlePlayerEventResponse struct {
	// Events are the normalized events the raw event translated into.
	Events []adapter.Event
	// ErrorMessage is set when the load turned terminal; it is the only
	// kind of error shown to the user.
	ErrorMessage string
}

// HandlePlayerEvent feeds one backend-native event through the session's
// adapter and applies the normalized results: time updates drive progress
// saving, readiness releases a pending resume seek, errors end the load.
func (s *service) HandlePlayerEvent(ctx context.Context, params *HandlePlayerEventParams) (HandlePlayerEventResponse, error) {
	sess, err := s.getSession(params.SessionId)
	if err != nil {
		return HandlePlayerEventResponse{}, fmt.Errorf("failed to get session: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	events := sess.adapter.HandleRawEvent(params.Raw)

	var resp HandlePlayerEventResponse
	resp.Events = events

	for _, event := range events {
		switch event.Type {
		case adapter.EventLoadStart:
			sess.state.IsLoading = true

		case adapter.EventReady:
			sess.state.IsLoading = false
			// the adapter has replayed any deferred seek by now
			sess.state.PendingSeekTarget = nil

		case adapter.EventPlayingChanged:
			sess.state.IsPlaying = event.IsPlaying

		case adapter.EventVolumeChanged:
			sess.state.Volume = event.Volume
			sess.state.IsMuted = event.IsMuted

		case adapter.EventTimeUpdate:
			s.scheduleSaveLocked(sess, event.Position)

		case adapter.EventError:
			// terminal for this load: no retry, no further saving
			sess.saveHalted = true
			sess.cancelDebounceLocked()
			sess.state.LastError = event.Message
			sess.state.IsLoading = false
			sess.state.IsPlaying = false
			resp.ErrorMessage = event.Message
		}
	}

	return resp, nil
}

type ControlPlayerParams struct {
	SessionId string
	Action    string
	Value     float64
}

// ControlPlayer forwards a user control to the active adapter.
func (s *service) ControlPlayer(ctx context.Context, params *ControlPlayerParams) error {
	sess, err := s.getSession(params.SessionId)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch params.Action {
	case "play":
		return sess.adapter.Play()
	case "pause":
		return sess.adapter.Pause()
	case "toggle_mute":
		return sess.adapter.ToggleMute()
	case "set_volume":
		return sess.adapter.SetVolume(params.Value)
	case "seek":
		return sess.adapter.Seek(params.Value)
	case "request_fullscreen":
		return sess.adapter.RequestFullscreen()
	default:
		return ErrUnknownControlAction
	}
}
