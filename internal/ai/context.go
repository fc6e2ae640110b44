package ai

import "context"

type purposeKey struct{}

// WithPurpose labels the context so the event log can attribute a
// request, e.g. "lesson" or "vocab".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reads the label back; unlabeled requests report "unknown".
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	if p == "" {
		return "unknown"
	}
	return p
}
