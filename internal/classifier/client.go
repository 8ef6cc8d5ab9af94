package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Scores holds the per-attribute probabilities returned by the toxicity
// service, each in [0, 1].
type Scores struct {
	Toxicity       float64 `json:"toxicity"`
	Threat         float64 `json:"threat"`
	Insult         float64 `json:"insult"`
	IdentityAttack float64 `json:"identity_attack"`
	Obscene        float64 `json:"obscene"`
}

// Max returns the highest of the attribute scores.
func (s Scores) Max() float64 {
	max := s.Toxicity
	for _, v := range []float64{s.Threat, s.Insult, s.IdentityAttack, s.Obscene} {
		if v > max {
			max = v
		}
	}
	return max
}

// Classifier scores free text for toxicity. Implementations are
// constructed once at startup and injected into the content gate.
type Classifier interface {
	Score(ctx context.Context, text string) (Scores, error)
}

// HTTPClassifier calls an external scoring API.
type HTTPClassifier struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewHTTPClassifier(baseURL, apiKey string) *HTTPClassifier {
	return &HTTPClassifier{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type scoreRequest struct {
	Text string `json:"text"`
}

// Score submits text for analysis and returns the attribute scores.
func (c *HTTPClassifier) Score(ctx context.Context, text string) (Scores, error) {
	body, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return Scores{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/score", bytes.NewReader(body))
	if err != nil {
		return Scores{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Scores{}, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return Scores{}, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(data))
	}

	var scores Scores
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return Scores{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return scores, nil
}
