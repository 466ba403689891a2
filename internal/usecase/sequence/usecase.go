package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/futig/outreach-backend/internal/pkg/metrics"
	"github.com/futig/outreach-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	upsertCreated = "created"
	upsertUpdated = "updated"
)

// Clock returns the current time.
type Clock func() time.Time

// SequenceUsecase implements sequence persistence rules
type SequenceUsecase struct {
	repo  repository.SequenceRepository
	clock Clock
}

func NewUsecase(repo repository.SequenceRepository, clock Clock) *SequenceUsecase {
	if clock == nil {
		clock = time.Now
	}
	return &SequenceUsecase{
		repo:  repo,
		clock: clock,
	}
}

// Upsert inserts a novel id or overwrites the mutable fields of an existing one,
// then returns the stored row.
//
// The existence check and the write are separate statements without a
// transaction. Two concurrent upserts of the same id are last-writer-wins, and
// two concurrent inserts of a novel id surface the primary key violation as a
// storage error.
func (uc *SequenceUsecase) Upsert(ctx context.Context, req *entity.SaveSequenceRequest) (*entity.Sequence, error) {
	now := uc.clock().UTC().Truncate(time.Microsecond)

	sequence := entity.Sequence{
		ID:        req.ID,
		UserID:    req.UserID,
		OrgID:     req.OrgID,
		Name:      req.Name,
		Content:   req.Content,
		Messages:  req.Messages,
		CreatedAt: now,
		UpdatedAt: now,
	}

	outcome := upsertUpdated
	_, err := uc.repo.Get(ctx, req.ID)
	switch {
	case err == nil:
		if err := uc.repo.Update(ctx, sequence); err != nil {
			return nil, fmt.Errorf("update sequence: %w", err)
		}
	case errors.Is(err, entity.ErrSequenceNotFound):
		outcome = upsertCreated
		if err := uc.repo.Insert(ctx, sequence); err != nil {
			return nil, fmt.Errorf("insert sequence: %w", err)
		}
	default:
		return nil, fmt.Errorf("check sequence: %w", err)
	}

	stored, err := uc.repo.Get(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("reload sequence: %w", err)
	}

	metrics.SequenceUpserts.WithLabelValues(outcome).Inc()
	ctxzap.Info(ctx, "sequence stored",
		zap.String("sequence_id", stored.ID),
		zap.String("outcome", outcome),
	)

	return stored, nil
}

func (uc *SequenceUsecase) Get(ctx context.Context, id string) (*entity.Sequence, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *SequenceUsecase) ListByUser(ctx context.Context, userID string) ([]*entity.Sequence, error) {
	return uc.repo.ListByUser(ctx, userID)
}

func (uc *SequenceUsecase) ListByOrg(ctx context.Context, orgID string) ([]*entity.Sequence, error) {
	return uc.repo.ListByOrg(ctx, orgID)
}
