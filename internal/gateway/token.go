package gateway

import "context"

// TokenSource supplies the bearer token attached to outgoing gateway calls.
// An empty token is not an error at this layer; authorization failures surface
// as ordinary gateway errors.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticTokenSource returns the same token for every call. Used when the
// console is configured with a shared gateway credential.
type StaticTokenSource string

// Token implements TokenSource.
func (s StaticTokenSource) Token(context.Context) string {
	return string(s)
}
