package remote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/refbase/internal/config"
)

func TestOpen_IncompleteGitHubConfigDegradesToDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mirror.Driver = "github"
	cfg.Mirror.GitHub.Token = "only-a-token"

	m := Open(context.Background(), cfg)
	assert.False(t, m.Enabled())
	assert.Equal(t, DriverNone, m.Driver())
}

func TestOpen_CompleteGitHubConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mirror.Driver = "github"
	cfg.Mirror.GitHub.Token = "t"
	cfg.Mirror.GitHub.Owner = "o"
	cfg.Mirror.GitHub.Repo = "r"
	cfg.Mirror.GitHub.Timeout = "10s"

	m := Open(context.Background(), cfg)
	assert.True(t, m.Enabled())
	assert.Equal(t, DriverGitHub, m.Driver())
}

func TestOpen_MemoryDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mirror.Driver = "memory"

	m := Open(context.Background(), cfg)
	assert.True(t, m.Enabled())
	assert.Equal(t, DriverMemory, m.Driver())
}

func TestOpen_UnknownDriverDegradesToDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mirror.Driver = "carrier-pigeon"

	m := Open(context.Background(), cfg)
	assert.False(t, m.Enabled())
}

func TestOpen_EmptyDriverIsLocalOnly(t *testing.T) {
	cfg := &config.Config{}

	m := Open(context.Background(), cfg)
	assert.False(t, m.Enabled())
}

func TestDisabledMirror_ReadsReportNotFound(t *testing.T) {
	m := Disabled()
	_, err := m.Read(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, m.Write(context.Background(), "anything", nil, "msg"))
}
