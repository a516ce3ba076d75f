package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cosmosnotify/govbot/src/shared/httpx"
)

const defaultTimeout = 30 * time.Second

// Client fetches the current proposal list from the governance API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: httpx.NewDefault(defaultTimeout),
	}
}

// Fetch returns the proposals oldest-first. The feed serves newest-first;
// the order is reversed so the high-water mark advances without skipping an
// older proposal behind a newer one.
func (c *Client) Fetch(ctx context.Context) ([]Proposal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch proposals: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("proposal feed returned %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Proposals []Proposal `json:"proposals"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse feed response: %w", err)
	}

	proposals := result.Proposals
	for i, j := 0, len(proposals)-1; i < j; i, j = i+1, j-1 {
		proposals[i], proposals[j] = proposals[j], proposals[i]
	}
	return proposals, nil
}
