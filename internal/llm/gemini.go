package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/airparadise/chatbot/internal/domain"
	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrRateLimited signals that the model provider rejected the call for quota
// reasons; the orchestrator degrades to a fixed apology instead of failing.
var ErrRateLimited = errors.New("language model rate limited")

// Gemini talks to the Google generative language API.
type Gemini struct {
	client    *genai.Client
	modelName string
}

func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, modelName: modelName}, nil
}

// Complete sends the instruction block, the prior turns as alternating
// user/model entries, and the new message, returning a single completion.
func (g *Gemini) Complete(ctx context.Context, systemPrompt string, history []domain.Turn, message string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(200)

	chat := model.StartChat()
	chat.History = historyContents(history)

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", errors.New("empty completion from model")
	}
	return text, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func historyContents(history []domain.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)*2)
	for _, t := range history {
		if t.User != "" {
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(t.User)},
			})
		}
		if t.Bot != "" {
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(t.Bot)},
			})
		}
	}
	return contents
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return strings.TrimSpace(sb.String())
}
