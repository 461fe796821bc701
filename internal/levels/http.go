package levels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// maxResponseSize caps the body read from a level endpoint.
const maxResponseSize = 1 << 20

// HTTPProvider requests layouts from a generation endpoint.
//
// It POSTs {"difficulty": ..., "prompt": ...} and accepts either
// {"levelLayout": "<layout JSON as a string>"} or a bare layout document.
// A layout string that does not parse yields an empty layout rather than an
// error, matching how the game treats any malformed layout.
type HTTPProvider struct {
	Endpoint string
	Client   *http.Client // nil uses http.DefaultClient
}

type generateRequest struct {
	Difficulty config.Difficulty `json:"difficulty"`
	Prompt     string            `json:"prompt"`
}

type generateResponse struct {
	LevelLayout *string `json:"levelLayout"`
}

// Generate performs one request.
func (p *HTTPProvider) Generate(ctx context.Context, difficulty config.Difficulty) (sim.LevelLayout, error) {
	body, err := json.Marshal(generateRequest{Difficulty: difficulty, Prompt: Prompt(difficulty)})
	if err != nil {
		return nil, fmt.Errorf("levels: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("levels: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("levels: request %s: %w", p.Endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close error is not actionable

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("levels: %s returned %s", p.Endpoint, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("levels: read response: %w", err)
	}

	var wrapped generateResponse
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.LevelLayout != nil {
		return sim.ParseLayout([]byte(*wrapped.LevelLayout)), nil
	}
	return sim.DecodeLayout(data)
}
