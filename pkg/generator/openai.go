package generator

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator answers questions through the OpenAI chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates an OpenAI generator. The API key comes from
// the OPENAI_API_KEY environment variable.
func NewOpenAIGenerator(model string) (*OpenAIGenerator, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable not set", ErrGenerate)
	}
	return &OpenAIGenerator{client: openai.NewClient(key), model: model}, nil
}

// Answer sends the grounding prompt as a single user message and returns
// the model's reply.
func (g *OpenAIGenerator) Answer(question, docContext string) (string, error) {
	resp, err := g.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(question, docContext)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai request: %v", ErrGenerate, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrGenerate)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
