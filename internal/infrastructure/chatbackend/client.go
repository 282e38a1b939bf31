// Package chatbackend relays chat messages to the configured assistant
// endpoint. The endpoint's contract is loose: it should answer with
// {"reply": ...} or {"message": ...}, and anything else is shown to the
// visitor verbatim.
package chatbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

// Client implements application.ChatBackend over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates the relay client. The caller bounds each request via
// context; the http.Client itself carries no timeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: strings.TrimSpace(endpoint), httpClient: httpClient}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Send posts the message and extracts the reply, preferring "reply",
// then "message", then the raw body as text.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Keep the context error visible so callers can classify a
		// deadline hit as a timeout rather than a generic failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.UpstreamError{Provider: "chat", Status: resp.StatusCode, Body: string(body)}
	}

	return extractReply(body), nil
}

// extractReply checks the known reply fields in priority order and falls
// back to the raw body. A present-but-empty field still wins over the
// fallback.
func extractReply(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"reply", "message"} {
			raw, ok := fields[key]
			if !ok {
				continue
			}
			var text string
			if err := json.Unmarshal(raw, &text); err == nil {
				return text
			}
		}
	}
	return string(body)
}
