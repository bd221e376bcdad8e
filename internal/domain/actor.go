package domain

import "context"

// Actor is the authenticated user on whose behalf calls are made
type Actor struct {
	ID    string
	Token string
}

type actorKey struct{}

// WithActor returns a context carrying the actor
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext extracts the actor injected with WithActor
func ActorFromContext(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.ID == "" {
		return Actor{}, ErrUnauthenticated
	}
	return actor, nil
}
