package auth

import (
	"context"

	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/validation"
	"fluiq-workers/internal/models"
)

// SessionTokenProperty is the job-variable schema of the opaque token every
// gated job carries.
var SessionTokenProperty = validation.Property{
	Type:        "string",
	Description: "Session token issued by session-open",
	MinLength:   validation.IntPtr(1),
}

// Resolver maps a session token to an identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (models.Identity, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(ctx context.Context, token string) (models.Identity, error)

func (f ResolverFunc) Resolve(ctx context.Context, token string) (models.Identity, error) {
	return f(ctx, token)
}

// Authenticator is what workers depend on to gate a job.
type Authenticator interface {
	Require(ctx context.Context, token string) (context.Context, models.Identity, error)
}

// Gate rejects jobs that do not carry a live session.
type Gate struct {
	resolver Resolver
}

func NewGate(resolver Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// Require resolves token and returns ctx carrying the identity.
func (g *Gate) Require(ctx context.Context, token string) (context.Context, models.Identity, error) {
	if token == "" {
		return ctx, models.Identity{}, errors.NewUnauthenticatedError("sessionToken is required")
	}
	id, err := g.resolver.Resolve(ctx, token)
	if err != nil {
		return ctx, models.Identity{}, err
	}
	return WithIdentity(ctx, id), id, nil
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by Require, if any.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(models.Identity)
	return id, ok
}
