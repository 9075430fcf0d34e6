package gateway

import (
	"encoding/json"
	"strings"

	"github.com/bnema/brevio-cli/internal/domain"
)

type errorEnvelope struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Errors  []errorItem     `json:"errors"`
}

type errorItem struct {
	Message string `json:"message"`
}

type errorDetail struct {
	ErrorMessage string `json:"error_message"`
}

// classify extracts the notification title and description from an error
// body. Title precedence: message, detail.error_message, detail as a string,
// then a generic fallback. The description joins errors[].message.
func classify(payload []byte) (string, string) {
	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fallbackTitle, ""
	}

	return classifyTitle(envelope), classifyDescription(envelope.Errors)
}

// wrappedFailure reports whether a 2xx body is really an error envelope: it
// carries a non-empty errors list, or a message and no data member.
func wrappedFailure(payload []byte) bool {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(payload, &members); err != nil {
		return false
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return false
	}
	if len(envelope.Errors) > 0 {
		return true
	}

	_, hasData := members["data"]
	return !hasData && strings.TrimSpace(envelope.Message) != ""
}

func classifyTitle(envelope errorEnvelope) string {
	if message := strings.TrimSpace(envelope.Message); message != "" {
		return message
	}

	if len(envelope.Detail) > 0 {
		var detail errorDetail
		if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
			if message := strings.TrimSpace(detail.ErrorMessage); message != "" {
				return message
			}
		}

		var text string
		if err := json.Unmarshal(envelope.Detail, &text); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				return text
			}
		}
	}

	return fallbackTitle
}

func classifyDescription(items []errorItem) string {
	messages := make([]string, 0, len(items))
	for _, item := range items {
		if message := strings.TrimSpace(item.Message); message != "" {
			messages = append(messages, message)
		}
	}

	return strings.Join(messages, domain.DescriptionSeparator)
}
