// internal/models/chat.go
package models

// ChatRequest is the body of POST /api/chat and the variables of the
// answer-company-question job.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	Language       string `json:"language,omitempty"`
}

// ChatResponse is returned for every answered message.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Language string `json:"language"`
	Source   string `json:"source"`
}

// HealthResponse is returned by /health and /ready.
type HealthResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version,omitempty"`
	KnowledgeBase string            `json:"knowledgeBase,omitempty"`
	Checks        map[string]string `json:"checks,omitempty"`
}
