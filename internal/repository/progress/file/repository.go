// Package file persists progress ledgers as JSON files under a base
// directory, one file per client. Writes go through renameio so the blob is
// replaced atomically even if the process dies mid-write.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/embedplay/server/internal/repository/progress"
)

type repo struct {
	baseDir string
}

func NewRepo(baseDir string) (*repo, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	return &repo{baseDir: baseDir}, nil
}

func (r repo) getLedgerPath(clientId string) string {
	return filepath.Join(r.baseDir, clientId+"-"+progress.StorageKey+".json")
}

func (r repo) GetLedger(ctx context.Context, clientId string) ([]progress.Record, error) {
	funcName := "progress.file.GetLedger"
	slog.DebugContext(ctx, funcName, "clientId", clientId)

	raw, err := os.ReadFile(r.getLedgerPath(clientId))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var records []progress.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.InfoContext(ctx, funcName, "msg", "corrupt ledger treated as empty", "error", err)
		return nil, nil
	}

	return records, nil
}

func (r repo) SetLedger(ctx context.Context, clientId string, records []progress.Record) error {
	funcName := "progress.file.SetLedger"
	slog.DebugContext(ctx, funcName, "clientId", clientId, "records", len(records))

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	if err := renameio.WriteFile(r.getLedgerPath(clientId), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	return nil
}
