package llm

import "context"

// Purposes recorded with each request.
const (
	PurposeExplain = "explain"
	PurposeUnknown = "unknown"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

// Subject is the quiz question a request is about.
type Subject struct {
	SessionID string
	Question  string
	Answer    int
	Submitted int
}

type subjectKey struct{}

// WithSubject attaches the question being asked about to ctx.
func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, s)
}

// SubjectFrom returns the subject set by WithSubject.
func SubjectFrom(ctx context.Context) (Subject, bool) {
	s, ok := ctx.Value(subjectKey{}).(Subject)
	return s, ok
}
