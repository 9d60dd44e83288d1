package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/embedplay/server/internal/repository/progress"
)

type SaveProgressParams struct {
	SessionId       string
	PositionSeconds float64
}

// SaveProgress conditionally schedules a persisted write for the session's
// video identity. The call is a no-op below the minimum-watch floor and
// under the in-session rate limit; accepted calls within the debounce
// window collapse into a single write holding the most recent position.
func (s *service) SaveProgress(ctx context.Context, params *SaveProgressParams) error {
	sess, err := s.getSession(params.SessionId)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.scheduleSaveLocked(sess, params.PositionSeconds)

	return nil
}

func (s *service) scheduleSaveLocked(sess *session, positionSeconds float64) {
	if sess.closed || sess.saveHalted {
		return
	}
	if positionSeconds < MinProgressSeconds {
		return
	}
	if positionSeconds-sess.lastSavedPos < RateLimitSeconds {
		return
	}

	sess.pendingPos = positionSeconds
	sess.cancelDebounceLocked()
	sess.debounce = time.AfterFunc(s.debounceDuration, func() {
		s.flushSave(sess)
	})
}

// flushSave performs the persisted write when the debounce timer fires. It
// re-checks cancellation under the session lock: a save cancelled by unload
// or by a terminal error never lands.
func (s *service) flushSave(sess *session) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed || sess.saveHalted {
		return
	}
	sess.debounce = nil

	records, err := s.progressRepo.GetLedger(ctx, sess.clientId)
	if err != nil {
		slog.InfoContext(ctx, "flushSave", "failed to get ledger", err)
		records = nil
	}

	updated := make([]progress.Record, 0, len(records)+1)
	for _, record := range records {
		if record.URL != sess.videoIdentity {
			updated = append(updated, record)
		}
	}
	updated = append(updated, progress.Record{
		URL:         sess.videoIdentity,
		Timestamp:   sess.pendingPos,
		LastUpdated: s.now().UnixMilli(),
	})

	sort.Slice(updated, func(i, j int) bool {
		return updated[i].LastUpdated > updated[j].LastUpdated
	})
	if len(updated) > progress.MaxRecords {
		updated = updated[:progress.MaxRecords]
	}

	if err := s.progressRepo.SetLedger(ctx, sess.clientId, updated); err != nil {
		// the write is dropped, never surfaced to the user
		slog.InfoContext(ctx, "flushSave", "failed to set ledger", err)
		return
	}

	sess.lastSavedPos = sess.pendingPos
}

type ClearProgressParams struct {
	SessionId string
}

// ClearProgress removes the session's video from the ledger and resets the
// in-session rate-limit baseline.
func (s *service) ClearProgress(ctx context.Context, params *ClearProgressParams) error {
	sess, err := s.getSession(params.SessionId)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.cancelDebounceLocked()
	sess.lastSavedPos = 0

	records, err := s.progressRepo.GetLedger(ctx, sess.clientId)
	if err != nil {
		slog.InfoContext(ctx, "ClearProgress", "failed to get ledger", err)
		return nil
	}

	updated := make([]progress.Record, 0, len(records))
	for _, record := range records {
		if record.URL != sess.videoIdentity {
			updated = append(updated, record)
		}
	}
	if len(updated) == len(records) {
		return nil
	}

	if err := s.progressRepo.SetLedger(ctx, sess.clientId, updated); err != nil {
		slog.InfoContext(ctx, "ClearProgress", "failed to set ledger", err)
	}

	return nil
}
