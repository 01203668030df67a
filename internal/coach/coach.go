// Package coach explains wrong quiz answers in words a young child can
// follow.
package coach

import (
	"context"
	"fmt"
	"strings"
)

// Source says which explainer produced an explanation.
type Source string

const (
	SourceLocal Source = "local"
	SourceLLM   Source = "llm"
)

// Input is a graded question the child got wrong. SessionID names the quiz
// it came from and may be empty.
type Input struct {
	SessionID string
	A         int
	B         int
	Answer    int
	Submitted int
}

// Explanation is shown under the quiz feedback.
type Explanation struct {
	Text   string
	Tip    string
	Cheer  string
	Source Source
}

// Explainer turns a wrong answer into an explanation.
type Explainer interface {
	Explain(ctx context.Context, in Input) (*Explanation, error)
}

// maxListedSteps is the largest addend counted out number by number.
const maxListedSteps = 5

// Local explains with the "count on" strategy. It never fails.
type Local struct{}

func (Local) Explain(_ context.Context, in Input) (*Explanation, error) {
	start, step := in.A, in.B
	if step > start {
		start, step = step, start
	}

	var text string
	switch {
	case step == 0:
		text = fmt.Sprintf("Adding zero keeps the number the same, so %d + %d = %d.", in.A, in.B, in.Answer)
	case step <= maxListedSteps:
		counts := make([]string, step)
		for i := range counts {
			counts[i] = fmt.Sprint(start + i + 1)
		}
		text = fmt.Sprintf("Start at %d and count on %d more: %s. So %d + %d = %d.",
			start, step, strings.Join(counts, ", "), in.A, in.B, in.Answer)
	default:
		text = fmt.Sprintf("Start at %d and count on %d more to reach %d. So %d + %d = %d.",
			start, step, in.Answer, in.A, in.B, in.Answer)
	}

	return &Explanation{
		Text:   text,
		Tip:    localTip(in),
		Cheer:  "Mistakes help your brain grow. Keep going!",
		Source: SourceLocal,
	}, nil
}

func localTip(in Input) string {
	diff := in.Submitted - in.Answer
	switch {
	case diff == 1 || diff == -1:
		return "So close! You were just one away. Count slowly on your fingers."
	case in.Submitted == in.A || in.Submitted == in.B:
		return "Remember to add both numbers together."
	case diff > 0:
		return "Your answer was a bit too big. Try counting again."
	default:
		return "Your answer was a bit too small. Try counting on from the bigger number."
	}
}
