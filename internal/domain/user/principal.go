package user

import "context"

type Role string

const (
	RoleViewer Role = "viewer"
	RoleAdmin  Role = "admin"
)

// Principal is the caller identity attached to a request context.
type Principal struct {
	Subject string
	Role    Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
