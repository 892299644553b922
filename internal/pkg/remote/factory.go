package remote

import (
	"context"
	"strings"
	"time"

	"github.com/yigit/refbase/internal/config"
	"github.com/yigit/refbase/internal/pkg/logger"
)

// Open selects a Mirror implementation from the application configuration.
// Incomplete configuration is not an error: the original deployment model
// is "mirror when configured, pure local mode otherwise", so every
// degenerate case returns the disabled mirror instead of failing startup.
func Open(ctx context.Context, cfg *config.Config) Mirror {
	switch Driver(strings.ToLower(cfg.Mirror.Driver)) {
	case DriverGitHub:
		gh := cfg.Mirror.GitHub
		if gh.Token == "" || gh.Owner == "" || gh.Repo == "" {
			logger.Info().Msg("GitHub mirror not fully configured, running in local-only mode")
			return Disabled()
		}
		timeout, err := time.ParseDuration(gh.Timeout)
		if err != nil {
			timeout = 10 * time.Second
		}
		logger.Info().Str("owner", gh.Owner).Str("repo", gh.Repo).Str("branch", gh.Branch).Msg("GitHub mirror enabled")
		return NewGitHubMirror(GitHubConfig{
			Token:   gh.Token,
			Owner:   gh.Owner,
			Repo:    gh.Repo,
			Branch:  gh.Branch,
			APIBase: gh.APIBase,
			Timeout: timeout,
		})

	case DriverS3:
		s3cfg := cfg.Mirror.S3
		if s3cfg.Bucket == "" {
			logger.Info().Msg("S3 mirror has no bucket configured, running in local-only mode")
			return Disabled()
		}
		m, err := NewS3Mirror(ctx, S3Config{
			Region:          s3cfg.Region,
			Bucket:          s3cfg.Bucket,
			Endpoint:        s3cfg.Endpoint,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			PathStyle:       s3cfg.PathStyle,
			Prefix:          s3cfg.Prefix,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize S3 mirror, running in local-only mode")
			return Disabled()
		}
		logger.Info().Str("bucket", s3cfg.Bucket).Msg("S3 mirror enabled")
		return m

	case DriverMemory:
		return NewMemoryMirror()

	case DriverNone, Driver(""):
		return Disabled()

	default:
		logger.Warn().Str("driver", cfg.Mirror.Driver).Msg("Unknown mirror driver, running in local-only mode")
		return Disabled()
	}
}
