package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeAIClient struct {
	reply  string
	models []string
	err    error
}

func (f *fakeAIClient) GenerateReply(_ context.Context, _ string) (string, error) {
	return f.reply, f.err
}

func (f *fakeAIClient) ListModels(_ context.Context) ([]string, error) {
	return f.models, f.err
}

func TestChatService_Ask(t *testing.T) {
	svc := NewChatService(&fakeAIClient{reply: "**bold** advice"})

	out := svc.Ask(context.Background(), "what should I pack?")

	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestChatService_Ask_ProviderError(t *testing.T) {
	svc := NewChatService(&fakeAIClient{err: errors.New(`key <invalid> & expired`)})

	out := svc.Ask(context.Background(), "hello")

	// Always a displayable string, with the provider detail escaped
	assert.Contains(t, out, "AI Error:")
	assert.Contains(t, out, "&lt;invalid&gt;")
	assert.NotContains(t, out, "<invalid>")
}

func TestChatService_ListModels(t *testing.T) {
	svc := NewChatService(&fakeAIClient{models: []string{"models/a", "models/b"}})

	models, err := svc.ListModels(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"models/a", "models/b"}, models)
}

func TestChatService_ListModels_ProviderError(t *testing.T) {
	svc := NewChatService(&fakeAIClient{err: errors.New("quota exceeded")})

	_, err := svc.ListModels(context.Background())

	assert.Error(t, err)
}
