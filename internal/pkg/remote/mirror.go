package remote

import (
	"context"
	"errors"
)

// Driver identifies a concrete mirror backend implementation.
type Driver string

const (
	DriverGitHub Driver = "github" // GitHub contents API (default)
	DriverS3     Driver = "s3"     // S3 / MinIO compatible object store
	DriverMemory Driver = "memory" // in-memory (tests)
	DriverNone   Driver = "none"   // mirroring disabled, pure local mode
)

// ErrNotFound is returned by Read when the path does not exist remotely.
// Any other error means the remote is unavailable for this call; callers
// treat both the same way and keep working against the local copy.
var ErrNotFound = errors.New("remote: path not found")

// Mirror is the remote secondary copy of the data directory. Write is
// create-or-update; message is a human-readable change description that
// backends with a revision history (GitHub) attach to the revision and
// plain object stores ignore.
type Mirror interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte, message string) error
	Enabled() bool
	Driver() Driver
}

// disabledMirror is the no-op mirror used when no remote is configured.
type disabledMirror struct{}

// Disabled returns a mirror where every read misses and every write is a no-op.
func Disabled() Mirror { return disabledMirror{} }

func (disabledMirror) Read(context.Context, string) ([]byte, error) { return nil, ErrNotFound }

func (disabledMirror) Write(context.Context, string, []byte, string) error { return nil }

func (disabledMirror) Enabled() bool { return false }

func (disabledMirror) Driver() Driver { return DriverNone }
