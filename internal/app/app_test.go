package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedplay/server/internal/adapter"
	progressRedis "github.com/embedplay/server/internal/repository/progress/redis"
	"github.com/embedplay/server/internal/service/session"
	"github.com/embedplay/server/pkg/videourl"
)

type nopSender struct{}

func (nopSender) SendCommand(cmd adapter.Command) error { return nil }

func TestWatchAndResumeFlow(t *testing.T) {
	slog.SetLogLoggerLevel(slog.LevelDebug)
	s, _ := miniredis.Run()
	r := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	progressRepo := progressRedis.NewRepo(r)
	service := session.NewService(progressRepo, nil, &session.Config{
		DebounceDuration: 20 * time.Millisecond,
		PollInterval:     time.Hour,
	})

	ctx := context.Background()
	clientId := "client-1"

	// load a video for the first time
	loadResp, err := service.LoadVideo(ctx, &session.LoadVideoParams{
		ClientId: clientId,
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
		Sender:   nopSender{},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loadResp.SessionId, "session id is empty")
	assert.Equal(t, videourl.KindYouTube, loadResp.Kind, "kind is not youtube")
	assert.Equal(t, "dQw4w9WgXcQ", loadResp.YouTubeId, "youtube id is not equal")
	assert.Nil(t, loadResp.ResumePrompt, "first load must not prompt")
	t.Log("video loaded")

	// the page reports readiness and playback progress
	_, err = service.HandlePlayerEvent(ctx, &session.HandlePlayerEventParams{
		SessionId: loadResp.SessionId,
		Raw:       adapter.RawEvent{Name: "ready"},
	})
	require.NoError(t, err)
	_, err = service.HandlePlayerEvent(ctx, &session.HandlePlayerEventParams{
		SessionId: loadResp.SessionId,
		Raw:       adapter.RawEvent{Name: "current_time", Position: 45},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		records, err := progressRepo.GetLedger(ctx, clientId)
		return err == nil && len(records) == 1
	}, time.Second, 5*time.Millisecond, "progress was not persisted")
	t.Log("progress saved")

	// leave the video
	err = service.UnloadSession(ctx, &session.UnloadSessionParams{SessionId: loadResp.SessionId})
	require.NoError(t, err)

	// come back: the saved position crosses the resume threshold
	reloadResp, err := service.LoadVideo(ctx, &session.LoadVideoParams{
		ClientId: clientId,
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Sender:   nopSender{},
	})
	require.NoError(t, err)
	require.NotNil(t, reloadResp.ResumePrompt, "second load must prompt")
	assert.Equal(t, float64(45), reloadResp.ResumePrompt.PositionSeconds, "saved position is not equal")
	t.Log("resume prompt shown")

	// resuming before the player is ready defers the seek
	resolveResp, err := service.ResolveResume(ctx, &session.ResolveResumeParams{
		SessionId: reloadResp.SessionId,
		Choice:    session.ResumeFromSaved,
	})
	require.NoError(t, err)
	assert.True(t, resolveResp.SeekDeferred, "seek must be deferred before ready")

	_, err = service.HandlePlayerEvent(ctx, &session.HandlePlayerEventParams{
		SessionId: reloadResp.SessionId,
		Raw:       adapter.RawEvent{Name: "ready"},
	})
	require.NoError(t, err)

	state, err := service.GetState(ctx, &session.GetStateParams{SessionId: reloadResp.SessionId})
	require.NoError(t, err)
	assert.Nil(t, state.PendingSeekTarget, "deferred seek must be released on ready")
	t.Log("resume applied")

	// forget this video
	err = service.ClearProgress(ctx, &session.ClearProgressParams{SessionId: reloadResp.SessionId})
	require.NoError(t, err)

	records, err := progressRepo.GetLedger(ctx, clientId)
	require.NoError(t, err)
	assert.Empty(t, records, "ledger must be empty after clear")

	t.Log(r.Keys(ctx, "*").Val())
}
