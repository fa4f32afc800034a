package services

import (
	"context"

	"carspace/internal/domain"

	"github.com/google/uuid"
)

// Identity is the authenticated caller, decoded from the bearer token.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (id Identity) IsSuperAdmin() bool {
	return id.Role == domain.RoleSuperAdmin
}

type identityCtxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}
