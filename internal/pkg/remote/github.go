package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GitHubConfig holds the settings for the GitHub contents API mirror.
// Token, Owner and Repo are required; the factory refuses to construct the
// driver without them.
type GitHubConfig struct {
	Token   string
	Owner   string
	Repo    string
	Branch  string        // default "main"
	APIBase string        // default "https://api.github.com"; overridable for tests
	Timeout time.Duration // per-call timeout, default 10s
}

// GitHubMirror mirrors files into a repository via the contents API. Every
// write is a commit on the configured branch, which doubles as a free
// revision history for the data files.
type GitHubMirror struct {
	cfg    GitHubConfig
	client *http.Client
}

// NewGitHubMirror creates a GitHub mirror with defaults filled in.
func NewGitHubMirror(cfg GitHubConfig) *GitHubMirror {
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.APIBase == "" {
		cfg.APIBase = "https://api.github.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GitHubMirror{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (m *GitHubMirror) Enabled() bool { return true }

func (m *GitHubMirror) Driver() Driver { return DriverGitHub }

// contentsURL builds the contents API URL for a repo-relative path.
func (m *GitHubMirror) contentsURL(path string) string {
	safePath := strings.ReplaceAll(path, "\\", "/")
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		strings.TrimRight(m.cfg.APIBase, "/"), m.cfg.Owner, m.cfg.Repo, safePath)
}

type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type putContentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// getContents fetches the raw contents record for path on the configured
// branch. 404 maps to ErrNotFound; anything else unexpected is an error.
func (m *GitHubMirror) getContents(ctx context.Context, path string) (*contentsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.contentsURL(path), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+m.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	q := url.Values{}
	q.Set("ref", m.cfg.Branch)
	req.URL.RawQuery = q.Encode()

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: unexpected status %d reading %s", resp.StatusCode, path)
	}

	var cr contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("github: decoding contents response: %w", err)
	}
	return &cr, nil
}

// Read returns the decoded bytes stored at path, or ErrNotFound.
func (m *GitHubMirror) Read(ctx context.Context, path string) ([]byte, error) {
	cr, err := m.getContents(ctx, path)
	if err != nil {
		return nil, err
	}
	if cr.Content == "" {
		return nil, ErrNotFound
	}
	// The API wraps base64 content at 60 columns.
	raw := strings.ReplaceAll(cr.Content, "\n", "")
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("github: decoding content of %s: %w", path, err)
	}
	return data, nil
}

// Write creates or updates path on the configured branch. The current sha
// is fetched first and carried forward so that updating an existing file is
// not rejected as a create conflict; a missing file simply omits the sha.
func (m *GitHubMirror) Write(ctx context.Context, path string, data []byte, message string) error {
	var sha string
	if cr, err := m.getContents(ctx, path); err == nil {
		sha = cr.SHA
	}

	payload := putContentsRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  m.cfg.Branch,
		SHA:     sha,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, m.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "token "+m.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("github: unexpected status %d writing %s", resp.StatusCode, path)
	}
	return nil
}
