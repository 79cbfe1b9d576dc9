package songs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/justestif/moodify/internal/mood"
)

const (
	userAgent    = "moodify/1.0"
	maxBodyBytes = 4 << 20
)

// StatusError reports a non-2xx response from the song service.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to fetch songs: %d %s", e.Code, e.Status)
}

// RemoteClient queries a song service exposing GET /get_songs/{emotion}.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteClient creates a client for the service at baseURL. A nil
// httpClient gets a client with a 10 second timeout.
func NewRemoteClient(baseURL string, httpClient *http.Client) *RemoteClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// songsResponse is the song service body. Exactly one field is expected.
type songsResponse struct {
	Songs   []Track `json:"songs"`
	Message string  `json:"message"`
	Error   string  `json:"error"`
}

// Find fetches tracks for e. A "message" body becomes a NoSongsError and an
// "error" body is returned verbatim.
func (c *RemoteClient) Find(ctx context.Context, e mood.Emotion) ([]Track, error) {
	reqURL := c.baseURL + "/get_songs/" + url.PathEscape(e.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: statusText(resp)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var parsed songsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	switch {
	case parsed.Error != "":
		return nil, errors.New(parsed.Error)
	case parsed.Message != "":
		return nil, &NoSongsError{Message: parsed.Message}
	case len(parsed.Songs) == 0:
		return nil, ErrNoSongs
	}
	return parsed.Songs, nil
}

func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
