package provider

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/ZaguanLabs/menuval"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

// GoogleProvider implements Provider using the Cloud Translation v2 API.
type GoogleProvider struct {
	svc   *translate.Service
	model string
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	APIKey          string // API key; CredentialsFile is used when empty
	CredentialsFile string // service account JSON (optional)
	Model           string // "nmt" or "base" (default: server choice)
	Endpoint        string // override for tests and proxies
}

// NewGoogleProvider creates a Cloud Translation client.
func NewGoogleProvider(ctx context.Context, cfg GoogleConfig) (*GoogleProvider, error) {
	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translate service: %w", err)
	}
	return &GoogleProvider{svc: svc, model: cfg.Model}, nil
}

// Translate translates one text. LangAuto leaves source detection to the API.
func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if req.Text == "" {
		return "", nil
	}

	call := p.svc.Translations.List([]string{req.Text}, string(req.TargetLang)).Format("text")
	if req.SourceLang != "" && req.SourceLang != menuval.LangAuto {
		call = call.Source(string(req.SourceLang))
	}
	if p.model != "" {
		call = call.Model(p.model)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return "", &menuval.ProviderError{
			Message:   "Google Translate call failed",
			Cause:     err,
			Retryable: isRetryableGoogle(err),
		}
	}
	if len(resp.Translations) == 0 {
		return "", &menuval.ProviderError{
			Message:   "empty response from Google Translate",
			Retryable: true,
		}
	}

	// Plain-text format still escapes the odd apostrophe.
	return html.UnescapeString(resp.Translations[0].TranslatedText), nil
}

func isRetryableGoogle(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return retryableStatus(gerr.Code)
	}
	return isRetryableError(err)
}

var _ Provider = (*GoogleProvider)(nil)
