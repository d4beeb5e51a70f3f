package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseBytes caps the body read from an advice endpoint.
const maxResponseBytes = 4 << 10

// HTTPGenerator asks a remote endpoint for advice.
//
// It POSTs {"score": N, "difficulty": "NAME"} and expects {"text": "..."}.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
}

type httpRequest struct {
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
}

type httpResponse struct {
	Text string `json:"text"`
}

// NewHTTPGenerator creates a generator for endpoint. A nil client uses
// http.DefaultClient.
func NewHTTPGenerator(endpoint string, client *http.Client) *HTTPGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGenerator{endpoint: endpoint, client: client}
}

// Advice performs one request. The context bounds the whole exchange.
func (g *HTTPGenerator) Advice(ctx context.Context, score int, difficulty string) (string, error) {
	body, err := json.Marshal(httpRequest{Score: score, Difficulty: difficulty})
	if err != nil {
		return "", fmt.Errorf("advice: cannot encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("advice: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("advice: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice: unexpected status %s", resp.Status)
	}

	var out httpResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("advice: cannot decode response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
