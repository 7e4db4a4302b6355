package user

import "context"

type actorKey struct{}

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID   string
	FullName string
	Role     Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) Can(permission Permission) bool {
	return HasPermission(a.Role, permission)
}

// WithActor stores the actor on the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor set by the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.UserID == "" {
		return Actor{}, ErrActorMissing
	}
	return actor, nil
}
