package tabular

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/yigit/refbase/internal/pkg/logger"
	"github.com/yigit/refbase/internal/pkg/metrics"
	"github.com/yigit/refbase/internal/pkg/remote"
)

// Store loads and saves whole tables with a dual-tier discipline: reads
// prefer the remote mirror and fall back to the local file, then to an
// empty table; writes land locally first and are mirrored best-effort.
// The mutex keeps concurrent read-modify-write cycles from interleaving
// within this process; across processes the discipline stays last-write-wins.
type Store struct {
	mu      sync.Mutex
	dataDir string
	mirror  remote.Mirror
}

// NewStore creates a store rooted at dataDir and backed by the given mirror.
func NewStore(dataDir string, mirror remote.Mirror) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("tabular: creating data dir: %w", err)
	}
	return &Store{dataDir: dataDir, mirror: mirror}, nil
}

// Mirror exposes the store's mirror so sibling stores (attachments) share it.
func (s *Store) Mirror() remote.Mirror { return s.mirror }

// DataDir returns the local data directory root.
func (s *Store) DataDir() string { return s.dataDir }

func (s *Store) localPath(name string) string {
	return filepath.Join(s.dataDir, name)
}

// RemotePath maps a data-dir-relative name to its mirror path. The mirror
// keeps the data directory name as its top-level prefix, matching the
// layout of the mirrored repository ("data/referees.csv").
func (s *Store) RemotePath(name string) string {
	return path.Join(filepath.Base(s.dataDir), filepath.ToSlash(name))
}

// Load resolves a table for name: the remote copy when the mirror is
// enabled and the content parses, else the local file, else an empty table.
// Every expected column missing from the result is added with empty-string
// cells. Load never fails; a completely unreachable world still yields an
// empty table with the expected columns.
func (s *Store) Load(ctx context.Context, name string, columns []string) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, name, columns)
}

func (s *Store) loadLocked(ctx context.Context, name string, columns []string) *Table {
	var t *Table

	if s.mirror.Enabled() {
		metrics.RemoteReads.Inc()
		data, err := s.mirror.Read(ctx, s.RemotePath(name))
		switch {
		case err == nil:
			parsed, perr := Decode(data)
			if perr != nil {
				logger.Warn().Err(perr).Str("table", name).Msg("Remote table content unparsable, falling back to local copy")
			} else {
				t = parsed
			}
		case errors.Is(err, remote.ErrNotFound):
			metrics.RemoteReadFailures.Inc()
		default:
			metrics.RemoteReadFailures.Inc()
			logger.Warn().Err(err).Str("table", name).Msg("Remote table read failed, falling back to local copy")
		}
	}

	if t == nil {
		data, err := os.ReadFile(s.localPath(name))
		if err == nil {
			parsed, perr := Decode(data)
			if perr != nil {
				logger.Warn().Err(perr).Str("table", name).Msg("Local table content unparsable, starting from empty table")
			} else {
				t = parsed
			}
		}
	}

	if t == nil {
		t = New(columns)
	}
	t.EnsureColumns(columns)
	return t
}

// Save encodes the table and writes the local file first; only a local
// failure is an error. The mirror write happens after and is best-effort:
// a failed or unreachable remote never rolls back or fails the save.
func (s *Store) Save(ctx context.Context, name string, t *Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, name, t)
}

func (s *Store) saveLocked(ctx context.Context, name string, t *Table) error {
	data, err := t.Encode()
	if err != nil {
		return fmt.Errorf("tabular: encoding %s: %w", name, err)
	}

	local := s.localPath(name)
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("tabular: creating dir for %s: %w", name, err)
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return fmt.Errorf("tabular: writing %s: %w", name, err)
	}
	metrics.TableSaves.Inc()

	if s.mirror.Enabled() {
		metrics.RemoteWrites.Inc()
		message := fmt.Sprintf("Update %s via referee app", filepath.Base(name))
		if err := s.mirror.Write(ctx, s.RemotePath(name), data, message); err != nil {
			metrics.RemoteWriteFailures.Inc()
			logger.Warn().Err(err).Str("table", name).Msg("Remote table mirror write failed, local copy saved")
		}
	}

	return nil
}

// WarmLocal materializes the local copy of a table without touching the
// mirror. When no local file exists yet the table is resolved through the
// usual fallback chain and written out, so one boot with a reachable
// mirror leaves a complete local cache behind.
func (s *Store) WarmLocal(ctx context.Context, name string, columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	local := s.localPath(name)
	if _, err := os.Stat(local); err == nil {
		return nil
	}

	t := s.loadLocked(ctx, name, columns)
	data, err := t.Encode()
	if err != nil {
		return fmt.Errorf("tabular: encoding %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("tabular: creating dir for %s: %w", name, err)
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return fmt.Errorf("tabular: writing %s: %w", name, err)
	}
	return nil
}

// Update runs one whole read-modify-write cycle under the store lock:
// load name, apply mutate, and save back. An error from mutate aborts the
// cycle with nothing written.
func (s *Store) Update(ctx context.Context, name string, columns []string, mutate func(*Table) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.loadLocked(ctx, name, columns)
	if err := mutate(t); err != nil {
		return err
	}
	return s.saveLocked(ctx, name, t)
}
