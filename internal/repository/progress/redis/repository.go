package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/embedplay/server/internal/repository/progress"
)

type repo struct {
	rc *redis.Client
}

func NewRepo(rc *redis.Client) *repo {
	return &repo{rc: rc}
}

func (r repo) getLedgerKey(clientId string) string {
	return "client:" + clientId + ":" + progress.StorageKey
}

// GetLedger returns the client's ledger. A missing or corrupt blob is an
// empty ledger, not an error; only transport failures propagate.
func (r repo) GetLedger(ctx context.Context, clientId string) ([]progress.Record, error) {
	funcName := "progress.redis.GetLedger"
	slog.DebugContext(ctx, funcName, "clientId", clientId)

	raw, err := r.rc.Get(ctx, r.getLedgerKey(clientId)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	var records []progress.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.InfoContext(ctx, funcName, "msg", "corrupt ledger treated as empty", "error", err)
		return nil, nil
	}

	return records, nil
}

// SetLedger replaces the client's ledger blob in a single write. The caller
// is responsible for ordering and truncation.
func (r repo) SetLedger(ctx context.Context, clientId string, records []progress.Record) error {
	funcName := "progress.redis.SetLedger"
	slog.DebugContext(ctx, funcName, "clientId", clientId, "records", len(records))

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	// No TTL: the ledger persists until cleared or evicted by the
	// MaxRecords retention rule.
	if err := r.rc.Set(ctx, r.getLedgerKey(clientId), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to set ledger: %w", err)
	}

	return nil
}
