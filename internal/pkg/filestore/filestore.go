package filestore

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/logger"
	"github.com/yigit/refbase/internal/pkg/remote"
)

// Kind selects the attachment family. Each kind maps to its own
// subdirectory under the data dir and its own accepted file types.
type Kind string

const (
	KindPhoto    Kind = "photo"
	KindPassport Kind = "passport"
)

var kindDirs = map[Kind]string{
	KindPhoto:    "photos",
	KindPassport: "passports",
}

var kindExtensions = map[Kind]map[string]bool{
	KindPhoto:    {".jpg": true, ".jpeg": true, ".png": true},
	KindPassport: {".pdf": true, ".jpg": true, ".jpeg": true, ".png": true},
}

// Store keeps attachment binaries in two tiers: local disk is the working
// copy; the mirror holds a secondary copy that also serves as an archive,
// since deletion only ever removes the local file.
type Store struct {
	dataDir string
	mirror  remote.Mirror
}

// NewStore creates the attachment store and its subdirectories.
func NewStore(dataDir string, mirror remote.Mirror) (*Store, error) {
	for _, dir := range kindDirs {
		full := filepath.Join(dataDir, dir)
		if err := os.MkdirAll(full, 0o755); err != nil {
			logger.Error().Err(err).Str("path", full).Msg("Failed to create attachment directory")
			return nil, fmt.Errorf("filestore: creating %s: %w", full, err)
		}
	}
	return &Store{dataDir: dataDir, mirror: mirror}, nil
}

func (s *Store) localPath(relPath string) string {
	return filepath.Join(s.dataDir, filepath.FromSlash(relPath))
}

func (s *Store) remotePath(relPath string) string {
	return path.Join(filepath.Base(s.dataDir), relPath)
}

// Put stores an attachment for an official. The stored name is the
// official's id plus the original extension, so re-uploading for the same
// official overwrites instead of accumulating files. Returns the
// data-dir-relative path to record on the official row.
func (s *Store) Put(ctx context.Context, kind Kind, officialID, originalFilename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !kindExtensions[kind][ext] {
		return "", fmt.Errorf("%w: %s files do not accept %q", apperrors.ErrUnsupportedFile, kind, ext)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("filestore: reading upload: %w", err)
	}

	relPath := path.Join(kindDirs[kind], officialID+ext)
	local := s.localPath(relPath)

	_, statErr := os.Stat(local)
	existed := statErr == nil

	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return "", fmt.Errorf("filestore: creating dir for %s: %w", relPath, err)
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", local).Msg("Failed to write attachment")
		return "", fmt.Errorf("filestore: writing %s: %w", relPath, err)
	}

	if s.mirror.Enabled() {
		verb := "Add"
		if existed {
			verb = "Update"
		}
		message := fmt.Sprintf("%s %s %s via referee app", verb, kind, path.Base(relPath))
		if err := s.mirror.Write(ctx, s.remotePath(relPath), data, message); err != nil {
			logger.Warn().Err(err).Str("path", relPath).Msg("Attachment mirror write failed, local copy saved")
		}
	}

	logger.Info().Str("kind", string(kind)).Str("path", relPath).Msg("Attachment stored")
	return relPath, nil
}

// Open returns a reader over the attachment bytes and the MIME type
// derived from the extension. A file missing locally is pulled from the
// mirror first; if it exists nowhere the attachment is reported not found.
func (s *Store) Open(ctx context.Context, relPath string) (io.ReadCloser, string, error) {
	if relPath == "" {
		return nil, "", apperrors.ErrAttachmentNotFound
	}

	local := s.localPath(relPath)
	if _, err := os.Stat(local); os.IsNotExist(err) {
		s.SyncLocal(ctx, relPath)
	}

	f, err := os.Open(local)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperrors.ErrAttachmentNotFound
		}
		return nil, "", fmt.Errorf("filestore: opening %s: %w", relPath, err)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(relPath)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return f, mimeType, nil
}

// SyncLocal materializes a missing local copy from the mirror.
// Best-effort: every failure is swallowed, the caller falls back to
// whatever is (or is not) on disk.
func (s *Store) SyncLocal(ctx context.Context, relPath string) {
	if relPath == "" || !s.mirror.Enabled() {
		return
	}
	local := s.localPath(relPath)
	if _, err := os.Stat(local); err == nil {
		return
	}

	data, err := s.mirror.Read(ctx, s.remotePath(relPath))
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		logger.Warn().Err(err).Str("path", relPath).Msg("Failed to materialize attachment from mirror")
		return
	}
	logger.Debug().Str("path", relPath).Msg("Attachment pulled from mirror")
}

// DeleteLocal removes the local attachment file if present. The mirror
// copy is deliberately left behind as an archival trail. Idempotent.
func (s *Store) DeleteLocal(relPath string) error {
	if relPath == "" {
		return nil
	}

	local := s.localPath(relPath)
	if _, err := os.Stat(local); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(local); err != nil {
		logger.Error().Err(err).Str("path", local).Msg("Failed to delete attachment")
		return fmt.Errorf("filestore: deleting %s: %w", relPath, err)
	}
	logger.Info().Str("path", relPath).Msg("Local attachment deleted, mirror copy retained")
	return nil
}
