package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// Actor is the authenticated principal attached by the auth middleware.
// The domain services trust it and never re-derive authorization.
type Actor struct {
	ID       uuid.UUID
	SellerID uuid.UUID
	Admin    bool
}

func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func GetActor(ctx context.Context) *Actor {
	if ctx == nil {
		return nil
	}
	actor, ok := ctx.Value(actorKey{}).(*Actor)
	if !ok {
		return nil
	}
	return actor
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
