package infrastructure

import (
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatCompletion(t *testing.T) {
	req := openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "ab"},
			{Role: openai.ChatMessageRoleUser, Content: "轮胎"},
		},
	}
	now := time.Unix(1700000000, 0)

	resp := NewChatCompletion(req, "好的", now)
	assert.Equal(t, DefaultModel, resp.Model)
	assert.Equal(t, int64(1700000000), resp.Created)
	assert.Equal(t, "chat.completion", resp.Object)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "好的", resp.Choices[0].Message.Content)
	assert.Equal(t, openai.FinishReasonStop, resp.Choices[0].FinishReason)
	assert.Equal(t, 4, resp.Usage.PromptTokens)
	assert.Equal(t, 2, resp.Usage.CompletionTokens)
	assert.Equal(t, 6, resp.Usage.TotalTokens)
}

func TestLastUserMessage(t *testing.T) {
	msgs := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "first"},
		{Role: openai.ChatMessageRoleAssistant, Content: "reply"},
		{Role: openai.ChatMessageRoleUser, Content: "second"},
	}
	assert.Equal(t, "second", LastUserMessage(msgs))
	assert.Empty(t, LastUserMessage(nil))
}
