// Package youtube adapts the YouTube IFrame API backend. The iframe player
// has no continuous time event, so the adapter commands the page to report
// the current position on a fixed cadence while playback is active. It also
// cannot seek until the player signals ready, so early seeks are held and
// replayed once.
package youtube

import (
	"fmt"
	"time"

	"github.com/embedplay/server/internal/adapter"
)

// DefaultPollInterval is the time-report cadence. It matches the maximum
// acceptable staleness of saved progress.
const DefaultPollInterval = 5 * time.Second

// Raw event names as forwarded by the embed page from the IFrame API.
const (
	rawReady       = "ready"
	rawStateChange = "state_change"
	rawCurrentTime = "current_time"
	rawVolume      = "volume_change"
	rawError       = "error"
)

// IFrame API player states.
const (
	stateEnded   = 0
	statePlaying = 1
)

// IFrame API error codes mapped to the fixed user-facing categories.
var errorMessages = map[int]string{
	2:   "Invalid video ID.",
	100: "Video not found or private.",
	101: "Video embedding has been disabled by the owner.",
	150: "Video embedding has been disabled by the owner.",
}

const genericErrorMessage = "YouTube video failed to load. Please check the URL and try again."

type Adapter struct {
	sender       adapter.CommandSender
	pollInterval time.Duration

	ready       bool
	playing     bool
	muted       bool
	volume      float64
	pendingSeek *float64
	pollStop    chan struct{}
}

func New(sender adapter.CommandSender) *Adapter {
	return NewWithPollInterval(sender, DefaultPollInterval)
}

func NewWithPollInterval(sender adapter.CommandSender, pollInterval time.Duration) *Adapter {
	return &Adapter{sender: sender, pollInterval: pollInterval, volume: 0.8}
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

// SetVolume takes [0,1] and rescales to the IFrame API's 0-100 range.
func (a *Adapter) SetVolume(volume float64) error {
	if volume < 0 || volume > 1 {
		return fmt.Errorf("volume out of range: %f", volume)
	}

	return a.sender.SendCommand(adapter.Command{Action: adapter.ActionSetVolume, Value: volume * 100})
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

func (a *Adapter) Close() {
	a.stopPolling()
}

func (a *Adapter) HandleRawEvent(raw adapter.RawEvent) []adapter.Event {
	switch raw.Name {
	case rawReady:
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

	case rawStateChange:
		return a.setPlaying(raw.Code == statePlaying)

	case rawCurrentTime:
		return []adapter.Event{{Type: adapter.EventTimeUpdate, Position: raw.Position}}

	case rawVolume:
		// The IFrame API reports volume on a 0-100 scale.
		a.volume = raw.Volume / 100
		a.muted = raw.Muted
		return []adapter.Event{{Type: adapter.EventVolumeChanged, Volume: a.volume, IsMuted: a.muted}}

	case rawError:
		a.stopPolling()
		message, ok := errorMessages[raw.Code]
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

	if playing {
		a.startPolling()
	} else {
		a.stopPolling()
	}

	return []adapter.Event{{Type: adapter.EventPlayingChanged, IsPlaying: playing}}
}

// startPolling commands the page to report the current time every
// pollInterval. It runs only while the player is in the playing state.
func (a *Adapter) startPolling() {
	if a.pollStop != nil {
		return
	}

	stop := make(chan struct{})
	a.pollStop = stop

	go func() {
		ticker := time.NewTicker(a.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				a.sender.SendCommand(adapter.Command{Action: adapter.ActionReportTime})
			}
		}
	}()
}

func (a *Adapter) stopPolling() {
	if a.pollStop == nil {
		return
	}

	close(a.pollStop)
	a.pollStop = nil
}
