package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"chatbot/app/config"

	_ "embed"

	"github.com/sashabaranov/go-openai"
)

//go:embed polarity_prompt.txt
var polarityPromptTemplate string

var _ Scorer = (*OpenAI)(nil)

type polarityResponse struct {
	Polarity *float64 `json:"polarity"`
}

// OpenAI asks a chat model for the polarity.
type OpenAI struct {
	cfg    config.ModelConfig
	client *openai.Client
}

func NewOpenAI(cfg config.ModelConfig) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
	}

	return &OpenAI{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (s *OpenAI) Polarity(ctx context.Context, text string) (float64, error) {
	prompt := strings.ReplaceAll(polarityPromptTemplate, "{text}", text)

	aiResponse, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.cfg.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxCompletionTokens: 100,
			Temperature:         0,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return 0, fmt.Errorf("no chat completion found")
	}

	result := aiResponse.Choices[0].Message.Content
	result = strings.Trim(result, "`")
	result = strings.TrimSpace(result)
	result = strings.TrimPrefix(result, "json")
	result = strings.TrimSpace(result)

	var response polarityResponse
	if err = json.Unmarshal([]byte(result), &response); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if response.Polarity == nil {
		return 0, fmt.Errorf("response has no polarity")
	}

	return clamp(*response.Polarity), nil
}
