package chat

import (
	"context"

	"github.com/futig/outreach-backend/internal/entity"
)

type CompletionConnector interface {
	Complete(ctx context.Context, messages []entity.CompletionMessage) (string, error)
}

// ContextProvider resolves the recruiter and organization records used to
// personalize the prompt. A nil or empty record omits the block.
type ContextProvider interface {
	UserContext(ctx context.Context, userID string) (entity.ContextRecord, error)
	OrgContext(ctx context.Context, orgID string) (entity.ContextRecord, error)
}
