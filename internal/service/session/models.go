package session

import (
	"sync"
	"time"

	"github.com/embedplay/server/internal/adapter"
	"github.com/embedplay/server/pkg/videourl"
)

type ResumeState string

const (
	ResumeUnchecked     ResumeState = "unchecked"
	ResumeNoPrompt      ResumeState = "no_prompt"
	ResumePromptPending ResumeState = "prompt_pending"
	ResumeResolved      ResumeState = "resolved"
)

// PlaybackState is the transient per-session player state. It lives for one
// loaded video and is discarded on unload.
type PlaybackState struct {
	IsPlaying    bool     `json:"is_playing"`
	IsMuted      bool     `json:"is_muted"`
	Volume       float64  `json:"volume"`
	IsFullscreen bool     `json:"is_fullscreen"`
	IsLoading    bool     `json:"is_loading"`
	LastError    string   `json:"last_error,omitempty"`
	// PendingSeekTarget holds a resume seek the adapter could not perform
	// yet. Cleared once the adapter acknowledges readiness.
	PendingSeekTarget *float64 `json:"pending_seek_target,omitempty"`
}

type session struct {
	mu sync.Mutex

	id            string
	clientId      string
	videoIdentity string
	kind          videourl.Kind
	adapter       adapter.Adapter

	state       PlaybackState
	resumeState ResumeState
	// savedPosition is the ledger position shown in the resume prompt.
	savedPosition float64

	// save pipeline state: the explicit debounce-plus-rate-limit machine.
	lastSavedPos float64
	pendingPos   float64
	debounce     *time.Timer
	saveHalted   bool
	closed       bool
}

// cancelDebounceLocked stops any armed debounce timer. A stopped timer that
// already fired still re-checks closed/saveHalted under the session lock,
// so no cancelled save can land.
func (sess *session) cancelDebounceLocked() {
	if sess.debounce != nil {
		sess.debounce.Stop()
		sess.debounce = nil
	}
}
