package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cosmosnotify/govbot/src/shared/httpx"
)

const (
	defaultAPIURL  = "https://api.telegram.org"
	defaultTimeout = 60 * time.Second
)

// Client talks to the Telegram Bot API.
type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return NewClientWithBaseURL(token, defaultAPIURL)
}

// NewClientWithBaseURL points the client at an alternate API host.
func NewClientWithBaseURL(token, baseURL string) *Client {
	return &Client{
		token:      token,
		apiURL:     baseURL,
		httpClient: httpx.NewDefault(defaultTimeout),
	}
}

// apiResponse is the Bot API envelope common to every method.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func (c *Client) call(ctx context.Context, method string, payload interface{}, out interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var env apiResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("parse %s response: %w", method, err)
	}
	if !env.OK {
		if env.Description != "" {
			return fmt.Errorf("telegram %s: %s", method, env.Description)
		}
		return fmt.Errorf("telegram %s: status %d: %s", method, resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("parse %s result: %w", method, err)
		}
	}
	return nil
}

// CreateForumTopic creates a named discussion thread under a forum chat and
// returns its message thread id.
func (c *Client) CreateForumTopic(ctx context.Context, chatID int64, name string) (int64, error) {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"name":    name,
	}

	var topic struct {
		MessageThreadID int64 `json:"message_thread_id"`
	}
	if err := c.call(ctx, "createForumTopic", payload, &topic); err != nil {
		return 0, err
	}
	return topic.MessageThreadID, nil
}

// SendMessage posts Markdown text to a chat, optionally into a forum topic
// thread. Web page previews are always disabled.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, threadID int64) error {
	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "Markdown",
		"disable_web_page_preview": true,
	}
	if threadID != 0 {
		payload["message_thread_id"] = threadID
	}
	return c.call(ctx, "sendMessage", payload, nil)
}
