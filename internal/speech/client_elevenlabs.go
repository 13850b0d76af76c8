package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const elevenLabsURL = "https://api.elevenlabs.io/v1/text-to-speech"

type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

func NewElevenLabsClient(apiKey, voiceID string) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: elevenLabsURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// TEXT → SPEECH
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY not set")
	}

	payload, err := json.Marshal(map[string]string{
		"text":          text,
		"model_id":      "eleven_multilingual_v2",
		"language_code": language,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts failed: %s", string(b))
	}

	return io.ReadAll(resp.Body)
}
