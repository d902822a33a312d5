package infrastructure

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the model name reported when a request names none.
const DefaultModel = "chatglm3-6b-tire-lora"

// LastUserMessage returns the content of the last user message, if any.
func LastUserMessage(messages []openai.ChatCompletionMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == openai.ChatMessageRoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// NewChatCompletion wraps a reply in the OpenAI chat completion wire format.
// Token counts are rune counts; nothing here runs a tokenizer.
func NewChatCompletion(req openai.ChatCompletionRequest, reply string, now time.Time) openai.ChatCompletionResponse {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	prompt := 0
	for _, m := range req.Messages {
		prompt += utf8.RuneCountInString(m.Content)
	}
	completion := utf8.RuneCountInString(reply)

	return openai.ChatCompletionResponse{
		ID:      fmt.Sprintf("chatcmpl-%s", uuid.New().String()),
		Object:  "chat.completion",
		Created: now.Unix(),
		Model:   model,
		Choices: []openai.ChatCompletionChoice{
			{
				Index: 0,
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: reply,
				},
				FinishReason: openai.FinishReasonStop,
			},
		},
		Usage: openai.Usage{
			PromptTokens:     prompt,
			CompletionTokens: completion,
			TotalTokens:      prompt + completion,
		},
	}
}
