package sequence

import (
	"context"

	"github.com/futig/outreach-backend/internal/entity"
)

type SequenceUsecase interface {
	Upsert(ctx context.Context, req *entity.SaveSequenceRequest) (*entity.Sequence, error)
	Get(ctx context.Context, id string) (*entity.Sequence, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Sequence, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Sequence, error)
}
