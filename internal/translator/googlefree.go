package translator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"script-translator/internal/textutil"
)

const googleFreeBaseURL = "https://translate.googleapis.com/translate_a/single"

// GoogleFreeProvider translates through the unauthenticated Google
// translate endpoint, one text per request. The endpoint is rate
// limited, so a fixed pause follows each call. An item-level failure
// echoes the original text instead of failing the batch.
type GoogleFreeProvider struct {
	client *resty.Client
	delay  time.Duration
}

func NewGoogleFreeProvider(delay time.Duration) *GoogleFreeProvider {
	return &GoogleFreeProvider{
		client: resty.New().SetTimeout(30 * time.Second),
		delay:  delay,
	}
}

func (p *GoogleFreeProvider) Name() string { return "googlefree" }

func (p *GoogleFreeProvider) Translate(ctx context.Context, texts []string, req Request) ([]string, error) {
	results := make([]string, len(texts))
	for i, text := range texts {
		if ctx.Err() != nil {
			// Remaining items echo their originals; the run is
			// winding down, not failing.
			for j := i; j < len(texts); j++ {
				results[j] = texts[j]
			}
			return results, nil
		}

		translated, err := p.translateOne(ctx, text, req.TargetLang)
		if err != nil || translated == "" {
			log.Warn().Err(err).Str("text", textutil.Truncate(text, 30)).Msg("Item translation failed, echoing original")
			results[i] = text
		} else {
			results[i] = translated
		}

		if p.delay > 0 && i < len(texts)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(p.delay):
			}
		}
	}
	return results, nil
}

func (p *GoogleFreeProvider) translateOne(ctx context.Context, text, targetLang string) (string, error) {
	// Response shape: [[["translated","original",...],...],...]
	var body []any
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     "auto",
			"tl":     targetLang,
			"dt":     "t",
			"q":      text,
		}).
		SetResult(&body).
		Get(googleFreeBaseURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("translate endpoint returned %s", resp.Status())
	}

	if len(body) == 0 {
		return "", nil
	}
	chunks, _ := body[0].([]any)
	var out string
	for _, chunk := range chunks {
		parts, _ := chunk.([]any)
		if len(parts) > 0 {
			if s, ok := parts[0].(string); ok {
				out += s
			}
		}
	}
	return out, nil
}
