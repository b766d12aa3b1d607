// internal/workers/chatbot/answer-question/models.go
package answerquestion

import "gear9-chatbot/internal/common/validation"

type Input struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
	Language       string `json:"language"`
}

type Output struct {
	Reply    string `json:"reply"`
	Language string `json:"language"`
	Source   string `json:"source"`
	// FallbackErrorCode is set when the reply is the apology.
	FallbackErrorCode string `json:"fallbackErrorCode,omitempty"`
}

// ToVariables renders the process variables set on completion.
func (o *Output) ToVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"reply":    o.Reply,
		"language": o.Language,
		"source":   o.Source,
	}
	if o.FallbackErrorCode != "" {
		vars["fallbackErrorCode"] = o.FallbackErrorCode
	}
	return vars
}

// GetInputSchema returns the JSON schema for job variables, shared with
// POST /api/chat.
func GetInputSchema() string {
	return validation.ChatRequestSchema
}
