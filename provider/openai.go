package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/menuval"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using an OpenAI-compatible chat completion API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.1)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate translates one menu text.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: p.buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &menuval.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableOpenAI(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &menuval.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content)
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	targetName := menuval.GetLanguageName(req.TargetLang)

	sourceLine := "Detect the source language."
	if req.SourceLang != "" && req.SourceLang != menuval.LangAuto {
		sourceLine = fmt.Sprintf("The source language is %s.", menuval.GetLanguageName(req.SourceLang))
	}

	prompt := fmt.Sprintf(`# Role
You translate restaurant menu text into %s for printed and delivery-app menus.

# Task
%s Translate the provided text into %s.

# Style Guide
- **Dish names**: Use the name diners in the target market actually order by. Transliterate brand names and dishes with no common equivalent.
- **Brevity**: Menu text is short. Do NOT add explanations, quotes or alternatives.
- **Labels**: The text may start with a label such as "Food:" or "Food item:". Do NOT translate or repeat the label.
- **Numbers and units**: Keep quantities, sizes and prices exactly as written.`, targetName, sourceLine, targetName)

	if menuval.IsRTL(req.TargetLang) {
		prompt += "\n- **Script**: Write in Arabic script. Do not add diacritics."
	}

	prompt += `

# Format
Return a valid JSON object with a single key "translation" holding the translated string.
Example: { "translation": "translated text" }
- Do NOT wrap in Markdown code blocks.`

	return prompt
}

func (p *OpenAIProvider) buildUserMessage(req TranslateRequest) string {
	data, _ := json.Marshal(map[string]string{"text": req.Text})
	return string(data)
}

func (p *OpenAIProvider) parseResponse(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")
	content = strings.TrimSpace(content)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if s, ok := obj["translation"].(string); ok {
			return s, nil
		}
		// Fallback: the first string value
		for _, v := range obj {
			if s, ok := v.(string); ok {
				return s, nil
			}
		}
		return "", &menuval.ProviderError{
			Message:   "no translation in OpenAI response",
			Retryable: false,
		}
	}

	var s string
	if err := json.Unmarshal([]byte(content), &s); err == nil {
		return s, nil
	}

	return "", &menuval.ProviderError{
		Message:   "invalid response format from OpenAI",
		Retryable: false,
	}
}

func isRetryableOpenAI(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	return isRetryableError(err)
}

var _ Provider = (*OpenAIProvider)(nil)
