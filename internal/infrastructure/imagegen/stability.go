package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/pkg/logger"
	"go.uber.org/zap"
)

const defaultStabilityURL = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

// StabilityClient proxies text-to-image requests to the Stability API
type StabilityClient struct {
	apiKey   string
	apiURL   string
	client   *http.Client
	rehoster *Rehoster
}

// NewStabilityClient creates a Stability client. rehoster may be nil,
// in which case upstream URLs and data URIs are returned as-is.
func NewStabilityClient(apiKey, apiURL string, rehoster *Rehoster) *StabilityClient {
	if apiURL == "" {
		apiURL = defaultStabilityURL
	}
	return &StabilityClient{
		apiKey:   apiKey,
		apiURL:   apiURL,
		client:   &http.Client{Timeout: 120 * time.Second},
		rehoster: rehoster,
	}
}

type stabilityPayload struct {
	TextPrompts []stabilityPrompt `json:"text_prompts"`
	CfgScale    int               `json:"cfg_scale"`
	Height      int               `json:"height"`
	Width       int               `json:"width"`
	Samples     int               `json:"samples"`
}

type stabilityPrompt struct {
	Text string `json:"text"`
}

// stabilityArtifact covers the field names observed across upstream
// response shapes. Providers are not consistent about where the image
// lands, so every known alias is tried.
type stabilityArtifact struct {
	Base64  string `json:"base64"`
	B64JSON string `json:"b64_json"`
	B64     string `json:"b64"`
	URL     string `json:"url"`
	URI     string `json:"uri"`
}

func (a stabilityArtifact) base64Data() string {
	switch {
	case a.Base64 != "":
		return a.Base64
	case a.B64JSON != "":
		return a.B64JSON
	default:
		return a.B64
	}
}

func (a stabilityArtifact) remoteURL() string {
	if a.URL != "" {
		return a.URL
	}
	return a.URI
}

// Generate sends the prompt upstream and normalizes the response into
// displayable image references
func (c *StabilityClient) Generate(ctx context.Context, in entities.GenerateImageInput) (*entities.ImageSuggestion, error) {
	if c.apiKey == "" {
		return nil, domainerrors.NewAppError(http.StatusInternalServerError, "image provider not configured", nil)
	}

	payload := stabilityPayload{
		TextPrompts: []stabilityPrompt{{Text: in.Prompt}},
		CfgScale:    in.CfgScale,
		Height:      in.Height,
		Width:       in.Width,
		Samples:     in.Samples,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domainerrors.Upstream(http.StatusBadGateway, "image generation failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.Upstream(http.StatusBadGateway, "image generation failed", err)
	}

	if resp.StatusCode >= 400 {
		return nil, domainerrors.Upstream(resp.StatusCode, "image generation failed",
			fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	suggestion := c.decode(ctx, raw, in.Samples)
	if !suggestion.Recognized() {
		logger.Warn(ctx, "unrecognized image response shape",
			zap.String("provider", "stability"))
	}
	return suggestion, nil
}

// decode tries the known response shapes in order: artifacts, output,
// then a bare array. Anything unrecognized is surfaced raw so callers
// can inspect what upstream actually sent.
func (c *StabilityClient) decode(ctx context.Context, raw []byte, samples int) *entities.ImageSuggestion {
	var withArtifacts struct {
		Artifacts []stabilityArtifact `json:"artifacts"`
		Output    []stabilityArtifact `json:"output"`
	}
	var urls []string

	if err := json.Unmarshal(raw, &withArtifacts); err == nil {
		if len(withArtifacts.Artifacts) > 0 {
			urls = c.collect(ctx, withArtifacts.Artifacts)
		} else if len(withArtifacts.Output) > 0 {
			urls = c.collect(ctx, withArtifacts.Output)
		}
	}

	if len(urls) == 0 {
		var bare []stabilityArtifact
		if err := json.Unmarshal(raw, &bare); err == nil && len(bare) > 0 {
			urls = c.collect(ctx, bare)
		}
	}

	if len(urls) == 0 {
		var payload interface{}
		if err := json.Unmarshal(raw, &payload); err != nil {
			payload = string(raw)
		}
		return &entities.ImageSuggestion{Raw: payload}
	}

	if samples > 0 && len(urls) > samples {
		urls = urls[:samples]
	}
	return &entities.ImageSuggestion{URLs: urls}
}

func (c *StabilityClient) collect(ctx context.Context, artifacts []stabilityArtifact) []string {
	var urls []string
	for _, art := range artifacts {
		if remote := art.remoteURL(); remote != "" {
			if c.rehoster != nil {
				if hosted, err := c.rehoster.FetchAndSave(ctx, "stability", remote); err == nil {
					urls = append(urls, hosted)
					continue
				}
				// fall back to the upstream URL when rehosting fails
			}
			urls = append(urls, remote)
			continue
		}

		b64 := unwrapBase64(art.base64Data())
		if b64 == "" {
			continue
		}
		if c.rehoster != nil {
			if data, err := base64.StdEncoding.DecodeString(b64); err == nil {
				if hosted, err := c.rehoster.SaveBytes("stability", data, "png"); err == nil {
					urls = append(urls, hosted)
					continue
				}
			}
		}
		urls = append(urls, "data:image/png;base64,"+b64)
	}
	return urls
}

// unwrapBase64 handles providers that JSON-stringify the base64 field
func unwrapBase64(b64 string) string {
	b64 = strings.TrimSpace(b64)
	if strings.HasPrefix(b64, "{") || strings.HasPrefix(b64, "[") {
		var nested stabilityArtifact
		if err := json.Unmarshal([]byte(b64), &nested); err == nil {
			if inner := nested.base64Data(); inner != "" {
				return inner
			}
		}
	}
	return b64
}
