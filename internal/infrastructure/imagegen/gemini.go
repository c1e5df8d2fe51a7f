package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerrors "cling-reminder.backend/internal/domain/errors"
)

const (
	defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

	maxIconKeywords = 4
	iconColor       = "10b981"
	defaultColor    = "6b7280"
)

// GeminiClient asks Gemini for icon keywords matching a reminder
// description and turns them into placeholder image URLs.
type GeminiClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewGeminiClient creates a Gemini keyword client
func NewGeminiClient(apiKey, apiURL string) *GeminiClient {
	if apiURL == "" {
		apiURL = defaultGeminiURL
	}
	return &GeminiClient{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// SuggestIcons returns up to four placeholder icon URLs derived from
// Gemini's one-word keyword suggestions for the description
func (c *GeminiClient) SuggestIcons(ctx context.Context, description string) ([]string, error) {
	if c.apiKey == "" {
		return nil, domainerrors.NewAppError(http.StatusInternalServerError, "icon provider not configured", nil)
	}

	prompt := fmt.Sprintf(
		"Generate four highly creative, simple, one-word keywords for icons that best represent the reminder description: %q. "+
			"Separate them with commas only. The output must ONLY contain the four keywords. "+
			"Example: 'Bike Service' -> 'Wrench, Helmet, Oil, Road'.",
		description,
	)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domainerrors.Upstream(http.StatusBadGateway, "failed to generate keywords", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.Upstream(http.StatusBadGateway, "failed to generate keywords", err)
	}
	if resp.StatusCode >= 400 {
		return nil, domainerrors.Upstream(resp.StatusCode, "failed to generate keywords",
			fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, domainerrors.Upstream(http.StatusBadGateway, "failed to generate keywords", err)
	}

	var text string
	if len(decoded.Candidates) > 0 && len(decoded.Candidates[0].Content.Parts) > 0 {
		text = decoded.Candidates[0].Content.Parts[0].Text
	}

	urls := keywordURLs(text)
	if len(urls) == 0 {
		urls = []string{placeholderURL(defaultColor, "Default")}
	}
	return urls, nil
}

// keywordURLs converts a comma-separated keyword list into placeholder
// icon URLs, capped at four keywords
func keywordURLs(text string) []string {
	var urls []string
	for _, kw := range strings.Split(text, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		urls = append(urls, placeholderURL(iconColor, strings.ToUpper(kw)))
		if len(urls) == maxIconKeywords {
			break
		}
	}
	return urls
}

func placeholderURL(color, text string) string {
	return fmt.Sprintf("https://dummyimage.com/150x150/%s/ffffff&text=%s", color, url.QueryEscape(text))
}
