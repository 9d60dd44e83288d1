// Package session owns one playback session per loaded video: the
// in-memory playback state, the save/debounce/rate-limit pipeline feeding
// the progress ledger, and the resume decision. All consistency rules for
// the shared ledger are enforced here, in one place, rather than at call
// sites.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/embedplay/server/internal/repository/progress"
	"github.com/embedplay/server/pkg/ytvideodata"
)

const (
	// MinProgressSeconds is the minimum-watch floor: no position below it
	// is ever persisted.
	MinProgressSeconds = 10
	// RateLimitSeconds is the minimum in-session progress between two
	// accepted writes.
	RateLimitSeconds = 5
	// ResumeThresholdSeconds is the minimum saved position that qualifies
	// for a resume prompt. Deliberately higher than the save floor: a
	// video can have saved progress without prompting.
	ResumeThresholdSeconds = 30
	// DefaultDebounceDuration collapses save bursts into one write.
	DefaultDebounceDuration = time.Second
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrResumeNotPending     = errors.New("no resume prompt is pending")
	ErrUnknownControlAction = errors.New("unknown control action")
)

type iProgressRepo interface {
	GetLedger(ctx context.Context, clientId string) ([]progress.Record, error)
	SetLedger(ctx context.Context, clientId string, records []progress.Record) error
}

type iVideoData interface {
	Get(ctx context.Context, videoId string) (*ytvideodata.VideoData, error)
}

type Config struct {
	// DebounceDuration defaults to DefaultDebounceDuration when zero.
	DebounceDuration time.Duration
	// PollInterval overrides the embed adapter's time-report cadence.
	// Zero keeps the adapter default.
	PollInterval time.Duration
}

type service struct {
	progressRepo     iProgressRepo
	videoData        iVideoData
	debounceDuration time.Duration
	pollInterval     time.Duration
	now              func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewService creates the session service. videoData may be nil; metadata
// lookups are then skipped.
func NewService(progressRepo iProgressRepo, videoData iVideoData, cfg *Config) *service {
	debounce := DefaultDebounceDuration
	if cfg != nil && cfg.DebounceDuration > 0 {
		debounce = cfg.DebounceDuration
	}

	var pollInterval time.Duration
	if cfg != nil {
		pollInterval = cfg.PollInterval
	}

	return &service{
		progressRepo:     progressRepo,
		videoData:        videoData,
		debounceDuration: debounce,
		pollInterval:     pollInterval,
		now:              time.Now,
		sessions:         make(map[string]*session),
	}
}

func (s *service) getSession(sessionId string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionId]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}
