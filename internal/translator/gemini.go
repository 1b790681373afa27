package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// batchDelimiter separates per-item translations in the model response.
const batchDelimiter = "|||"

// GeminiProvider translates batches through the Google Gemini API with
// a single generateContent call per batch.
type GeminiProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *genConfig      `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Translate sends the ordered batch as a numbered prompt and splits the
// response on the delimiter. A short response is padded with the
// original texts so index i always answers request index i.
func (p *GeminiProvider) Translate(ctx context.Context, texts []string, req Request) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	response, err := p.generate(ctx, systemPrompt(req), batchPrompt(texts))
	if err != nil {
		return nil, err
	}

	parts := strings.Split(response, batchDelimiter)
	results := make([]string, len(texts))
	for i := range results {
		if i < len(parts) && strings.TrimSpace(parts[i]) != "" {
			results[i] = strings.TrimSpace(parts[i])
		} else {
			results[i] = texts[i]
		}
	}
	return results, nil
}

func systemPrompt(req Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a game localization translator. Translate into %s.\n", req.TargetLang)
	sb.WriteString("Preserve all markup, placeholders like {{var_1}}, line breaks and punctuation style.\n")
	if req.FormatHint != "" {
		fmt.Fprintf(&sb, "The source strings come from %s game files.\n", req.FormatHint)
	}
	if req.Context != "" {
		fmt.Fprintf(&sb, "Context: %s\n", req.Context)
	}
	return sb.String()
}

func batchPrompt(texts []string) string {
	var sb strings.Builder
	sb.WriteString("Translate each of the following texts. Return ONLY the translations, in the same order.\n")
	sb.WriteString("Use " + batchDelimiter + " as a delimiter between translations.\n\n")
	for i, t := range texts {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, t)
	}
	return sb.String()
}

func (p *GeminiProvider) generate(ctx context.Context, system, user string) (string, error) {
	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: system}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: user}}},
		},
		GenerationConfig: &genConfig{
			MaxOutputTokens: 8192,
			Temperature:     0.3,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal translation request: %w", err)
	}

	var lastErr error
	maxRetries := 3

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*2) * time.Second
			log.Warn().Int("attempt", attempt+1).Dur("backoff", backoff).Msg("Retrying translation")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, err := p.doRequest(ctx, bodyBytes)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("translation failed after %d retries: %w", maxRetries, lastErr)
}

func (p *GeminiProvider) doRequest(ctx context.Context, bodyBytes []byte) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, p.model, p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", fmt.Errorf("retryable error (status %d): %s", resp.StatusCode, string(respBody))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("API error [%s]: %s", apiResp.Error.Status, apiResp.Error.Message)
	}
	if len(apiResp.Candidates) == 0 {
		return "", fmt.Errorf("empty response: no candidates")
	}

	var result strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		result.WriteString(part.Text)
	}
	return strings.TrimSpace(result.String()), nil
}
