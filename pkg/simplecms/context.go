package simplecms

import "context"

type contextKey int

const (
	userReferenceKey contextKey = iota
	sudoKey
)

// WithUserReference returns a context acting on behalf of the user.
func WithUserReference(ctx context.Context, ref UserReference) context.Context {
	return context.WithValue(ctx, userReferenceKey, ref)
}

// UserReferenceFrom returns the user set on the context, if any.
func UserReferenceFrom(ctx context.Context) (UserReference, bool) {
	ref, ok := ctx.Value(userReferenceKey).(UserReference)
	return ref, ok
}

// WithSudo returns a context in which permission checks are skipped.
func WithSudo(ctx context.Context) context.Context {
	return context.WithValue(ctx, sudoKey, true)
}

// IsSudo reports whether permission checks are skipped for ctx.
func IsSudo(ctx context.Context) bool {
	sudo, _ := ctx.Value(sudoKey).(bool)
	return sudo
}
