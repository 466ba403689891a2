// Package directory resolves recruiter and organization records that
// personalize the chat prompt.
package directory

import (
	"context"

	"github.com/futig/outreach-backend/internal/entity"
)

// Provider is implemented by every directory in this package.
type Provider interface {
	UserContext(ctx context.Context, userID string) (entity.ContextRecord, error)
	OrgContext(ctx context.Context, orgID string) (entity.ContextRecord, error)
}

var (
	_ Provider = &StaticDirectory{}
	_ Provider = &FileDirectory{}
	_ Provider = &CachedDirectory{}
)
