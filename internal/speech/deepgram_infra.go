package speech

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const deepgramURL = "https://api.deepgram.com/v1/listen"

type DeepgramClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewDeepgramClient(apiKey string) *DeepgramClient {
	return &DeepgramClient{
		apiKey:  apiKey,
		baseURL: deepgramURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio io.Reader, filename, language string) ([]Segment, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("DEEPGRAM_API_KEY not set")
	}

	q := url.Values{}
	q.Set("model", "nova-2")
	q.Set("smart_format", "true")
	q.Set("utterances", "true")
	q.Set("language", language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?"+q.Encode(), audio)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", audioContentType(filename))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepgram error: %s", body)
	}

	var parsed struct {
		Results struct {
			Utterances []struct {
				Start      float64 `json:"start"`
				Transcript string  `json:"transcript"`
			} `json:"utterances"`
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode deepgram: %w", err)
	}

	if len(parsed.Results.Utterances) > 0 {
		out := make([]Segment, 0, len(parsed.Results.Utterances))
		for _, u := range parsed.Results.Utterances {
			out = append(out, Segment{Start: u.Start, Text: u.Transcript})
		}
		return out, nil
	}

	// без utterances отдаём один сегмент с нуля
	if len(parsed.Results.Channels) == 0 ||
		len(parsed.Results.Channels[0].Alternatives) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}
	return []Segment{{Start: 0, Text: parsed.Results.Channels[0].Alternatives[0].Transcript}}, nil
}

func audioContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".webm":
		return "audio/webm"
	case ".ogg":
		return "audio/ogg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "audio/mpeg"
}
