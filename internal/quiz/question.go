package quiz

import (
	"fmt"
	"slices"
)

// Question is one addition prompt with its answer options.
type Question struct {
	A       int   `json:"a"`
	B       int   `json:"b"`
	Answer  int   `json:"answer"`
	Options []int `json:"options"`
}

// Prompt renders the question as shown to the learner, e.g. "3 + 4 = ?".
func (q Question) Prompt() string {
	return fmt.Sprintf("%d + %d = ?", q.A, q.B)
}

// Has reports whether v is one of the options.
func (q Question) Has(v int) bool {
	return slices.Contains(q.Options, v)
}

// Result is the outcome of grading a submitted answer. CorrectAnswer is
// always set so the caller can disclose it.
type Result struct {
	Correct       bool `json:"correct"`
	CorrectAnswer int  `json:"correct_answer"`
}

// Grade compares submitted against the question's answer.
func Grade(q Question, submitted int) Result {
	return Result{
		Correct:       submitted == q.Answer,
		CorrectAnswer: q.Answer,
	}
}
