package auth

import "context"

// SetIdentityForTest injects an identity into the context for testing purposes.
func SetIdentityForTest(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
