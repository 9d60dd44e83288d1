// Package native adapts an HTML5 media element. The element reports time
// continuously through timeupdate events, so no polling is involved; the
// adapter passes positions straight through.
package native

import (
	"fmt"

	"github.com/embedplay/server/internal/adapter"
)

// Raw event names as emitted by an HTML5 media element.
const (
	rawLoadStart    = "loadstart"
	rawCanPlay      = "canplay"
	rawPlay         = "play"
	rawPause        = "pause"
	rawEnded        = "ended"
	rawTimeUpdate   = "timeupdate"
	rawVolumeChange = "volumechange"
	rawError        = "error"
)

// Messages keyed by MediaError code.
var mediaErrorMessages = map[int]string{
	1: "Video loading was aborted.",
	2: "A network error interrupted video loading.",
	3: "The video could not be decoded.",
	4: "The video format is not supported or the source is unreachable.",
}

const genericErrorMessage = "Video failed to load. Please check the URL and try again."

type Adapter struct {
	sender adapter.CommandSender

	ready       bool
	playing     bool
	muted       bool
	volume      float64
	pendingSeek *float64
}

func New(sender adapter.CommandSender) *Adapter {
	return &Adapter{sender: sender, volume: 0.8}
}

func (a *Adapter) Play() error {
	return a.sender.SendCommand(adapter.Command{Action: adapter.ActionPlay})
}

func (a *Adapter) Pause() error {
	return a.sender.SendCommand(adapter.Command{Action: adapter.ActionPause})
}

func (a *Adapter) ToggleMute() error {
	if a.muted {
		return a.sender.SendCommand(adapter.Command{Action: adapter.ActionUnmute})
	}

	return a.sender.SendCommand(adapter.Command{Action: adapter.ActionMute})
}

func (a *Adapter) SetVolume(volume float64) error {
	if volume < 0 || volume > 1 {
		return fmt.Errorf("volume out of range: %f", volume)
	}

	return a.sender.SendCommand(adapter.Command{Action: adapter.ActionSetVolume, Value: volume})
}

func (a *Adapter) Seek(positionSeconds float64) error {
	if !a.ready {
		a.pendingSeek = &positionSeconds
		return nil
	}

	return a.sender.SendCommand(adapter.Command{Action: adapter.ActionSeek, Value: positionSeconds})
}

func (a *Adapter) RequestFullscreen() error {
	return a.sender.SendCommand(adapter.Command{Action: adapter.ActionRequestFullscreen})
}

func (a *Adapter) Ready() bool {
	return a.ready
}

func (a *Adapter) Close() {}

func (a *Adapter) HandleRawEvent(raw adapter.RawEvent) []adapter.Event {
	switch raw.Name {
	case rawLoadStart:
		a.ready = false
		return []adapter.Event{{Type: adapter.EventLoadStart}}

	case rawCanPlay:
		// canplay refires after every seek; only the first one counts as
		// readiness, and a deferred seek replays exactly once.
		if a.ready {
			return nil
		}
		a.ready = true
		events := []adapter.Event{{Type: adapter.EventReady}}
		if a.pendingSeek != nil {
			a.sender.SendCommand(adapter.Command{Action: adapter.ActionSeek, Value: *a.pendingSeek})
			a.pendingSeek = nil
		}
		return events

	case rawPlay:
		return a.setPlaying(true)

	case rawPause, rawEnded:
		return a.setPlaying(false)

	case rawTimeUpdate:
		return []adapter.Event{{Type: adapter.EventTimeUpdate, Position: raw.Position}}

	case rawVolumeChange:
		a.volume = raw.Volume
		a.muted = raw.Muted
		return []adapter.Event{{Type: adapter.EventVolumeChanged, Volume: a.volume, IsMuted: a.muted}}

	case rawError:
		message, ok := mediaErrorMessages[raw.Code]
		if !ok {
			message = genericErrorMessage
		}
		return []adapter.Event{{Type: adapter.EventError, Message: message}}
	}

	return nil
}

func (a *Adapter) setPlaying(playing bool) []adapter.Event {
	if a.playing == playing {
		return nil
	}
	a.playing = playing

	return []adapter.Event{{Type: adapter.EventPlayingChanged, IsPlaying: playing}}
}
