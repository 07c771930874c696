package llm

import "context"

// Purpose labels for WithPurpose.
const (
	PurposeQuestionGen = "question-gen"
	PurposeEvaluation  = "evaluation"
)

type purposeKey struct{}

// WithPurpose tags ctx so logging and metrics can attribute the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}
