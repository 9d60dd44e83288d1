// Package progress defines the persisted playback-progress ledger. Each
// client owns a single blob holding at most MaxRecords entries, newest
// first. The blob is always replaced whole, never patched, so readers can
// treat any malformed state as an empty ledger.
package progress

// StorageKey is the name of the persisted ledger blob.
const StorageKey = "video-progress"

// MaxRecords caps the ledger size. Writes that would exceed it evict the
// record with the oldest LastUpdated.
const MaxRecords = 10

// Record is one persisted progress entry. The JSON field names are the
// widget's storage format and must stay stable across every reader.
type Record struct {
	// URL is the canonical video URL used as the lookup key.
	URL string `json:"url"`
	// Timestamp is the last known playback offset in seconds.
	Timestamp float64 `json:"timestamp"`
	// LastUpdated is the wall-clock write time in epoch milliseconds. It
	// orders retention only and never feeds resume decisions.
	LastUpdated int64 `json:"lastUpdated"`
}
