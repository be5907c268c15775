package handoff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrDocumentUnavailable is the page-level failure of the handoff surface.
// It never affects the authoring wizard.
var ErrDocumentUnavailable = errors.New("handoff document unavailable")

const defaultFetchTimeout = 5 * time.Second

// Loader fetches roadmap markdown documents by relative path or URL.
type Loader struct {
	client *http.Client
}

func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Loader{client: client}
}

// Load reads the document behind ref: an http(s) URL is fetched, anything
// else is treated as a file path.
func (l *Loader) Load(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrDocumentUnavailable
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.fetch(ctx, ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	return string(data), nil
}

// LoadStoryMap loads and parses a roadmap document in one step.
func (l *Loader) LoadStoryMap(ctx context.Context, ref string) (StoryMap, error) {
	text, err := l.Load(ctx, ref)
	if err != nil {
		return StoryMap{}, err
	}
	return ParseStoryMap(text), nil
}

func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrDocumentUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	return string(data), nil
}
