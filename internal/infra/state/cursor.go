// Package state persists the update cursor between daemon runs.
package state

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"cekkuota-bot/internal/domain/ports/repository"
)

const cursorFile = "updates_offset.txt"

// Compile-time check
var _ repository.CursorStore = (*FileCursorStore)(nil)

// FileCursorStore keeps the cursor as decimal text in a single file. Only
// the update loop writes it; no concurrent writers are assumed.
type FileCursorStore struct {
	path string
	log  *zerolog.Logger
}

// NewFileCursorStore creates the state directory on demand. A directory that
// cannot be created is tolerated: the store stays best-effort and the loop
// runs with an in-memory cursor.
func NewFileCursorStore(dir string, logger *zerolog.Logger) *FileCursorStore {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("state dir unavailable, cursor will not persist")
	}
	return &FileCursorStore{path: filepath.Join(dir, cursorFile), log: logger}
}

// Load returns the persisted cursor, or 0 on any read or parse failure.
func (s *FileCursorStore) Load() int64 {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Save writes the cursor best-effort; failures are logged, never propagated.
func (s *FileCursorStore) Save(id int64) {
	if err := os.WriteFile(s.path, []byte(strconv.FormatInt(id, 10)), 0o644); err != nil {
		s.log.Warn().Err(err).Int64("cursor", id).Msg("cursor save failed")
	}
}
