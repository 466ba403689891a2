package chat

import (
	"context"
	"fmt"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/futig/outreach-backend/internal/pkg/metrics"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	parseOK        = "ok"
	parseMalformed = "malformed"
)

// ChatUsecase turns a conversation into one assistant reply.
type ChatUsecase struct {
	completion CompletionConnector
	directory  ContextProvider
}

// NewUsecase logs through the request logger carried in ctx.
func NewUsecase(completion CompletionConnector, directory ContextProvider) *ChatUsecase {
	return &ChatUsecase{
		completion: completion,
		directory:  directory,
	}
}

func (uc *ChatUsecase) Chat(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	user, err := uc.directory.UserContext(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q: %w", entity.ErrContextLookup, req.UserID, err)
	}

	org, err := uc.directory.OrgContext(ctx, req.OrgID)
	if err != nil {
		return nil, fmt.Errorf("%w: organization %q: %w", entity.ErrContextLookup, req.OrgID, err)
	}

	ctxzap.Debug(ctx, "chat context resolved",
		zap.Bool("has_user_context", len(user) > 0),
		zap.Bool("has_org_context", len(org) > 0),
		zap.Int("history_length", len(req.Messages)),
	)

	messages := BuildMessages(user, org, req.Messages)

	raw, err := uc.completion.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrCompletionFailed, err)
	}

	resp, err := ParseCompletion(raw)
	if err != nil {
		metrics.CompletionParses.WithLabelValues(parseMalformed).Inc()
		ctxzap.Error(ctx, "failed to parse completion",
			zap.String("raw_completion", raw),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.CompletionParses.WithLabelValues(parseOK).Inc()
	ctxzap.Info(ctx, "chat reply generated",
		zap.Bool("has_email_sequence", resp.EmailSequence != nil),
	)

	return resp, nil
}
