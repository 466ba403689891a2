package chat

import (
	"context"

	"github.com/futig/outreach-backend/internal/entity"
)

type ChatUsecase interface {
	Chat(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error)
}
