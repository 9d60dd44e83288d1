package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/embedplay/server/internal/adapter"
	"github.com/embedplay/server/internal/adapter/native"
	"github.com/embedplay/server/internal/adapter/youtube"
	"github.com/embedplay/server/pkg/videourl"
)

type LoadVideoParams struct {
	ClientId string
	VideoURL string
	Sender   adapter.CommandSender
}

type ResumePrompt struct {
	PositionSeconds float64 `json:"position_seconds"`
	Title           string  `json:"title,omitempty"`
	AuthorName      string  `json:"author_name,omitempty"`
	ThumbnailUrl    string  `json:"thumbnail_url,omitempty"`
}

type LoadVideoResponse struct {
	SessionId string
	VideoURL  string
	Kind      videourl.Kind
	YouTubeId string
	// ResumePrompt is non-nil iff the saved position crosses the resume
	// threshold; the caller must surface it before controls settle.
	ResumePrompt *ResumePrompt
}

// LoadVideo normalizes the URL, selects the matching adapter variant, and
// consults the ledger for a resume decision. The ledger read completes
// before the session exists, so no save from this session can race it.
func (s *service) LoadVideo(ctx context.Context, params *LoadVideoParams) (LoadVideoResponse, error) {
	identity := videourl.Normalize(params.VideoURL)
	kind := videourl.Classify(identity)

	var youtubeId string
	var backend adapter.Adapter
	if kind == videourl.KindYouTube {
		youtubeId, _ = videourl.ExtractYouTubeID(identity)
		if s.pollInterval > 0 {
			backend = youtube.NewWithPollInterval(params.Sender, s.pollInterval)
		} else {
			backend = youtube.New(params.Sender)
		}
	} else {
		// unknown URLs are still attempted as a direct media source
		backend = native.New(params.Sender)
	}

	records, err := s.progressRepo.GetLedger(ctx, params.ClientId)
	if err != nil {
		// storage failure degrades to an empty ledger
		slog.InfoContext(ctx, "LoadVideo", "failed to get ledger", err)
		records = nil
	}

	sess := &session{
		id:            uuid.NewString(),
		clientId:      params.ClientId,
		videoIdentity: identity,
		kind:          kind,
		adapter:       backend,
		resumeState:   ResumeNoPrompt,
		state:         PlaybackState{Volume: 0.8, IsLoading: true},
	}

	var prompt *ResumePrompt
	for _, record := range records {
		if record.URL != identity {
			continue
		}
		if record.Timestamp >= ResumeThresholdSeconds {
			sess.resumeState = ResumePromptPending
			sess.savedPosition = record.Timestamp
			prompt = &ResumePrompt{PositionSeconds: record.Timestamp}
		}
		break
	}

	if prompt != nil && youtubeId != "" && s.videoData != nil {
		if videoData, err := s.videoData.Get(ctx, youtubeId); err == nil {
			prompt.Title = videoData.Title
			prompt.AuthorName = videoData.AuthorName
			prompt.ThumbnailUrl = videoData.ThumbnailUrl
		} else {
			slog.InfoContext(ctx, "LoadVideo", "failed to get video data", err)
		}
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return LoadVideoResponse{
		SessionId:    sess.id,
		VideoURL:     identity,
		Kind:         kind,
		YouTubeId:    youtubeId,
		ResumePrompt: prompt,
	}, nil
}

type UnloadSessionParams struct {
	SessionId string
}

// UnloadSession tears a session down: pending debounced saves are
// cancelled, the adapter stops polling, and the playback state is
// discarded.
func (s *service) UnloadSession(ctx context.Context, params *UnloadSessionParams) error {
	sess, err := s.getSession(params.SessionId)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.mu.Lock()
	sess.closed = true
	sess.cancelDebounceLocked()
	sess.adapter.Close()
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, params.SessionId)
	s.mu.Unlock()

	return nil
}

type GetStateParams struct {
	SessionId string
}

func (s *service) GetState(ctx context.Context, params *GetStateParams) (PlaybackState, error) {
	sess, err := s.getSession(params.SessionId)
	if err != nil {
		return PlaybackState{}, fmt.Errorf("failed to get session: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.state, nil
}
