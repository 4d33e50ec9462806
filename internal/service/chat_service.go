package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/russross/blackfriday/v2"
)

// AIClient is the outbound surface of the generative-AI provider
type AIClient interface {
	GenerateReply(ctx context.Context, message string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

// ChatService proxies single-turn messages to the AI provider
type ChatService interface {
	// Ask always returns a displayable HTML string: the rendered reply on
	// success, an escaped error paragraph on provider failure.
	Ask(ctx context.Context, message string) string
	ListModels(ctx context.Context) ([]string, error)
}

type chatService struct {
	client AIClient
}

// NewChatService creates a new ChatService
func NewChatService(client AIClient) ChatService {
	return &chatService{client: client}
}

func (s *chatService) Ask(ctx context.Context, message string) string {
	reply, err := s.client.GenerateReply(ctx, message)
	if err != nil {
		log.Printf("AI provider error: %v", err)
		return fmt.Sprintf("<p style='color:red'>AI Error: %s</p>", html.EscapeString(err.Error()))
	}
	return string(blackfriday.Run([]byte(reply)))
}

func (s *chatService) ListModels(ctx context.Context) ([]string, error) {
	return s.client.ListModels(ctx)
}
