package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	providerNameMistral = "mistral"
	mistralBaseURL      = "https://api.mistral.ai/v1"
)

// MistralProvider implements the Provider interface against Mistral's
// OpenAI-compatible chat completions endpoint.
type MistralProvider struct {
	client *openai.Client
}

// NewMistralProvider creates a new Mistral provider
func NewMistralProvider(apiKey string) *MistralProvider {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(mistralBaseURL),
	)
	return &MistralProvider{client: &client}
}

// Name returns the provider name
func (p *MistralProvider) Name() string {
	return providerNameMistral
}

// Advise implements the plan advisory call via chat completions
func (p *MistralProvider) Advise(ctx context.Context, request *AdvisoryRequest) (*AdvisoryResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 MISTRAL ADVISORY REQUEST STARTED (Model: %s)", request.Model)

	// Start Sentry transaction
	transaction := sentry.StartTransaction(ctx, "mistral.advise")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameMistral)

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(request.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(request.SystemPrompt),
			openai.UserMessage(request.Prompt),
		},
	}

	// Mistral supports json_object mode; the section shape is enforced by
	// the prompt and validated after parsing.
	if request.OutputSchema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	span := transaction.StartChild("mistral.api_call")
	apiStartTime := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ MISTRAL REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, fmt.Errorf("mistral request failed: %w", err)
	}

	log.Printf("⏱️  MISTRAL API CALL COMPLETED in %v", apiDuration)

	if len(resp.Choices) == 0 {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("mistral response did not include any choices")
	}

	textOutput := cleanJSONOutput(resp.Choices[0].Message.Content)
	if textOutput == "" {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("mistral response did not include any output text")
	}

	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}

	log.Printf("📊 USAGE: input=%d, output=%d, total=%d",
		usage.InputTokens, usage.OutputTokens, usage.TotalTokens)
	log.Printf("✅ MISTRAL ADVISORY COMPLETED in %v", time.Since(startTime))

	transaction.SetTag("success", "true")
	return &AdvisoryResponse{
		RawOutput: textOutput,
		Usage:     usage,
	}, nil
}

// cleanJSONOutput strips markdown code fences that some models wrap around
// JSON output despite json_object mode.
func cleanJSONOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned != text {
		log.Printf("🧹 Stripped markdown code blocks from output: %d -> %d chars", len(text), len(cleaned))
	}
	return cleaned
}
