// Package extract normalizes heterogeneous LLM call results into plain text.
package extract

import (
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Text converts an arbitrary LLM call result into response text. Shape rules
// are tried in order; unknown shapes fall through to generic serialization.
// Text is total: it never fails and never panics on any input.
func Text(result any) string {
	if result == nil {
		return ""
	}

	switch v := result.(type) {
	case openai.ChatCompletionResponse:
		return chatCompletionText(&v)
	case *openai.ChatCompletionResponse:
		if v == nil {
			return ""
		}
		return chatCompletionText(v)
	case string:
		return v
	case []byte:
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case map[string]any:
		if text, ok := genericChatCompletionText(v); ok {
			return text
		}
	}

	// Fallback: serialize whatever this is.
	if data, err := json.Marshal(result); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", result)
}

// chatCompletionText pulls the first choice's message content from a
// go-openai chat completion response.
func chatCompletionText(resp *openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}

// genericChatCompletionText recognizes a chat-completion-like structure in
// decoded JSON: {"choices": [{"message": {"content": "..."}}]}.
func genericChatCompletionText(m map[string]any) (string, bool) {
	choices, ok := m["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}

	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}

	message, ok := first["message"].(map[string]any)
	if !ok {
		return "", false
	}

	content, ok := message["content"].(string)
	return content, ok
}
