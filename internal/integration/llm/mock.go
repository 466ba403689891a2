package llm

import (
	"context"
	"encoding/json"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockSequence = `Subject: Building the future of AI tooling at TechCorp

Hi {{first_name}},

I came across your work on distributed systems and was impressed by the scale of what you've shipped. At TechCorp we are growing the platform team that powers our machine learning products.

The role focuses on low-latency services in Go and close collaboration with our research group. The team is small, senior and ships weekly.

Would you be open to a 20 minute call next week to hear more?

Best,
John Doe`

// MockConnector returns a canned completion for local development.
type MockConnector struct{}

func NewMockConnector() *MockConnector {
	return &MockConnector{}
}

func (m *MockConnector) Complete(ctx context.Context, messages []entity.CompletionMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] requesting completion", zap.Int("message_count", len(messages)))

	payload := map[string]any{
		"text":      "Here is a first draft of the outreach email. Let me know if you want a follow-up step.",
		"reasoning": "Mock response: a short, personalized three paragraph email with a clear call to action.",
		"email_sequence": map[string]any{
			"content": mockSequence,
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "[MOCK] completion generated", zap.Int("content_length", len(raw)))
	return string(raw), nil
}
