// internal/common/telegram/client.go
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"telegram-jobboard/internal/common/httpx"
)

// Client is a minimal Telegram Bot API client covering sendMessage.
type Client struct {
	token      string
	baseURL    string
	httpClient *httpx.Client
}

// InlineButton is rendered as a single-row inline keyboard opening a web app.
type InlineButton struct {
	Text string
	URL  string
}

type sendMessageRequest struct {
	ChatID      int64       `json:"chat_id"`
	Text        string      `json:"text"`
	ParseMode   string      `json:"parse_mode"`
	ReplyMarkup interface{} `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

func NewClient(token string, timeout time.Duration) *Client {
	return &Client{
		token:      token,
		baseURL:    "https://api.telegram.org",
		httpClient: httpx.NewClient(timeout),
	}
}

// WithBaseURL overrides the API host, used in tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// SendMessage delivers a Markdown message to a chat, optionally with an
// inline web-app button. A non-ok API response is returned as an error;
// callers that must not fail on delivery errors convert it to a boolean.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, button *InlineButton) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)

	payload := sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	}

	if button != nil && button.Text != "" && button.URL != "" {
		payload.ReplyMarkup = map[string]interface{}{
			"inline_keyboard": [][]map[string]interface{}{
				{
					{
						"text":    button.Text,
						"web_app": map[string]string{"url": button.URL},
					},
				},
			},
		}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sendMessage payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("failed to unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	if !apiResp.OK {
		return fmt.Errorf("telegram API error (status %d, code %d): %s",
			resp.StatusCode, apiResp.ErrorCode, apiResp.Description)
	}

	return nil
}
