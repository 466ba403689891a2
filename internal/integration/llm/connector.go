package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/outreach-backend/internal/config"
	"github.com/futig/outreach-backend/internal/entity"
	"github.com/futig/outreach-backend/internal/integration/common"
	pkghttp "github.com/futig/outreach-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var (
	errEmptyChoices = errors.New("completion response has no choices")
)

// Connector talks to an OpenAI-compatible chat completion endpoint.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
}

func NewConnector(cfg config.LLMConnectorConfig) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig),
		config:    cfg,
	}
}

// Complete sends the conversation with the configured model and returns the
// text of the first choice. Failures are not retried.
func (c *Connector) Complete(ctx context.Context, messages []entity.CompletionMessage) (string, error) {
	ctxzap.Info(ctx, "requesting completion",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(messages)),
	)

	req := &entity.CompletionRequest{
		Model:    c.config.Model,
		Messages: messages,
	}

	var resp entity.CompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp)
	if err != nil {
		return "", err
	}

	if resp.Error != nil {
		return "", fmt.Errorf("provider error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", errEmptyChoices
	}

	content := resp.Choices[0].Message.Content
	ctxzap.Info(ctx, "completion received",
		zap.String("completion_id", resp.ID),
		zap.String("finish_reason", resp.Choices[0].FinishReason),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}
