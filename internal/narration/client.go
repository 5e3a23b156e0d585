// Package narration synthesizes spoken-word "ghost narration" audio for
// artifacts via the ElevenLabs text-to-speech API.
package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// narratorScript is the fixed script template, filled with the artifact's
// name and type.
const narratorScript = `Welcome, visitor, to the NecroNet Museum.
Before you stands %s, a %s artifact from the digital past.
This relic has been resurrected from the depths of obsolete technology.
Listen closely as I tell you its tale.`

// Client calls the ElevenLabs TTS API. A Client with a missing API key or
// voice id is valid; Synthesize then reports absence instead of failing.
type Client struct {
	apiKey     string
	voiceID    string
	modelID    string
	baseURL    string
	httpClient *http.Client
	probe      *http.Client
}

// Option configures the narration client.
type Option func(*Client)

// WithModelID sets the TTS model (default: eleven_turbo_v2_5).
func WithModelID(id string) Option {
	return func(c *Client) { c.modelID = id }
}

// WithBaseURL overrides the API endpoint (default: https://api.elevenlabs.io).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithTimeout sets the synthesis timeout (default: 60s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a narration client.
func NewClient(apiKey, voiceID string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		voiceID: voiceID,
		modelID: "eleven_turbo_v2_5",
		baseURL: "https://api.elevenlabs.io",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		// Voice lookups for health checks use a short timeout.
		probe: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether both the API key and the voice id are set.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.voiceID != ""
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize renders the narration script for an artifact and returns the
// synthesized audio. A nil, nil result means narration is unavailable
// (missing configuration); the reason is logged. A non-nil error means the
// API was reachable but the call failed.
func (c *Client) Synthesize(ctx context.Context, artifactName, artifactType string) ([]byte, error) {
	if c.apiKey == "" {
		slog.Warn("narration skipped: ELEVENLABS_API_KEY not set")
		return nil, nil
	}
	if c.voiceID == "" {
		slog.Warn("narration skipped: ELEVENLABS_VOICE_ID not set")
		return nil, nil
	}

	body, err := json.Marshal(ttsRequest{
		Text:    fmt.Sprintf(narratorScript, artifactName, artifactType),
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/text-to-speech/"+c.voiceID, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		detail := string(respBody)
		if len(detail) > 500 {
			detail = detail[:500]
		}
		return nil, fmt.Errorf("elevenlabs: HTTP %d: %s", resp.StatusCode, detail)
	}
	return respBody, nil
}

// VoiceStatus is the result of a live check against the voice-lookup endpoint.
type VoiceStatus struct {
	Status    string `json:"status"` // connected | error | not_configured
	VoiceName string `json:"voice_name,omitempty"`
	VoiceID   string `json:"voice_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CheckVoice performs a round-trip against the voice-lookup endpoint and
// resolves the configured voice's name.
func (c *Client) CheckVoice(ctx context.Context) VoiceStatus {
	if c.apiKey == "" {
		return VoiceStatus{Status: "not_configured", Error: "ELEVENLABS_API_KEY not set"}
	}
	if c.voiceID == "" {
		return VoiceStatus{Status: "not_configured", Error: "ELEVENLABS_VOICE_ID not set"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/voices/"+c.voiceID, nil)
	if err != nil {
		return VoiceStatus{Status: "error", Error: err.Error()}
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.probe.Do(req)
	if err != nil {
		return VoiceStatus{Status: "error", Error: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return VoiceStatus{Status: "error", Error: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		detail := string(respBody)
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return VoiceStatus{Status: "error", Error: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, detail)}
	}

	var voice struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(respBody, &voice); err != nil {
		return VoiceStatus{Status: "error", Error: "unmarshal response: " + err.Error()}
	}
	if voice.Name == "" {
		voice.Name = "Unknown"
	}
	return VoiceStatus{Status: "connected", VoiceName: voice.Name, VoiceID: c.voiceID}
}
