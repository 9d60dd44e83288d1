// Package adapter normalizes heterogeneous playback backends behind one
// control surface and one event shape. The embed page forwards each
// backend's native events verbatim; the adapter translates them and issues
// control commands back. Translation is the adapter's whole job; no
// business logic lives here.
package adapter

type EventType string

const (
	EventLoadStart      EventType = "load_start"
	EventReady          EventType = "ready"
	EventPlayingChanged EventType = "playing_changed"
	EventVolumeChanged  EventType = "volume_changed"
	EventError          EventType = "error"
	EventTimeUpdate     EventType = "time_update"
)

// Event is the normalized form every backend-native event translates into.
type Event struct {
	Type      EventType `json:"type"`
	IsPlaying bool      `json:"is_playing,omitempty"`
	Volume    float64   `json:"volume,omitempty"`
	IsMuted   bool      `json:"is_muted,omitempty"`
	Position  float64   `json:"position,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// RawEvent is a backend-native event as forwarded by the embed page. Which
// fields are meaningful depends on the backend and the event name.
type RawEvent struct {
	Name     string  `json:"name"`
	Code     int     `json:"code,omitempty"`
	Position float64 `json:"position,omitempty"`
	Volume   float64 `json:"volume,omitempty"`
	Muted    bool    `json:"muted,omitempty"`
}

type Action string

const (
	ActionPlay              Action = "play"
	ActionPause             Action = "pause"
	ActionMute              Action = "mute"
	ActionUnmute            Action = "unmute"
	ActionSetVolume         Action = "set_volume"
	ActionSeek              Action = "seek"
	ActionRequestFullscreen Action = "request_fullscreen"
	ActionReportTime        Action = "report_time"
)

// Command is a control instruction for the embed page to execute against
// its backend.
type Command struct {
	Action Action  `json:"action"`
	Value  float64 `json:"value,omitempty"`
}

// CommandSender delivers commands to the page driving the backend.
type CommandSender interface {
	SendCommand(cmd Command) error
}

// Adapter is the uniform playback contract. Implementations are not safe
// for concurrent use; the owning session serializes all calls.
type Adapter interface {
	Play() error
	Pause() error
	ToggleMute() error
	// SetVolume expects volume in [0,1] regardless of the backend's own scale.
	SetVolume(volume float64) error
	// Seek requests a jump to positionSeconds. Requests issued before the
	// backend is ready are deferred and replayed exactly once after ready.
	Seek(positionSeconds float64) error
	RequestFullscreen() error

	// HandleRawEvent translates one backend-native event into zero or more
	// normalized events, updating readiness, deferred-seek and polling
	// state along the way.
	HandleRawEvent(raw RawEvent) []Event
	Ready() bool
	Close()
}
