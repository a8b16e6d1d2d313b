// Package identity bridges the server to the managed identity provider. The
// provider keeps its own credential store; the server only holds the opaque
// identifier it hands back.
package identity

import "context"

// Provider is the external collaborator contract. Implementations create a
// provider-managed identity and return its opaque identifier. Any upstream
// failure (duplicate, credential policy, outage) wraps common.ErrProvider.
type Provider interface {
	CreateIdentity(ctx context.Context, email, password, displayName string) (string, error)
}
