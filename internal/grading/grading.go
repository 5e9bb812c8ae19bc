// Package grading scores a single submitted answer against its question. It is
// pure: no I/O, no errors. Anything it cannot grade yields a nil IsCorrect and zero
// points.
package grading

import "github.com/lshigami/Hireboard/internal/model"

// Response is the candidate's submission for one question. The concrete variant
// must match the question type to earn points.
type Response interface {
	isResponse()
}

// ChoiceResponse is the text of the option the candidate picked.
type ChoiceResponse struct {
	Selected string
}

// CodeResponse carries the judge's per-case verdicts. Malformed is set when the
// results were absent or could not be decoded.
type CodeResponse struct {
	Results   []model.TestCaseResult
	Malformed bool
}

type TextResponse struct {
	Text string
}

func (ChoiceResponse) isResponse() {}
func (CodeResponse) isResponse()   {}
func (TextResponse) isResponse()   {}

// Result is the outcome of grading one answer. IsCorrect is nil when the answer
// was not auto-graded.
type Result struct {
	IsCorrect     *bool
	PointsAwarded float64
}

func ungraded() Result { return Result{} }

func graded(correct bool, points float64) Result {
	return Result{IsCorrect: &correct, PointsAwarded: points}
}

// Grade scores resp against q.
func Grade(q *model.Question, resp Response) Result {
	if q == nil || resp == nil {
		return ungraded()
	}
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		r, ok := resp.(ChoiceResponse)
		if !ok {
			return ungraded()
		}
		return gradeChoice(q, r)
	case model.QuestionTypeCoding:
		r, ok := resp.(CodeResponse)
		if !ok || r.Malformed || r.Results == nil {
			return ungraded()
		}
		return gradeCode(q, r.Results)
	default:
		// Subjective answers are reviewed by a human.
		return ungraded()
	}
}

func gradeChoice(q *model.Question, r ChoiceResponse) Result {
	correct, ok := q.CorrectOption()
	if ok && r.Selected == correct.Text {
		return graded(true, q.Points)
	}
	return graded(false, 0)
}

func gradeCode(q *model.Question, results []model.TestCaseResult) Result {
	if q.ScoringLogic == model.ScoringFullPointsOnAllPass {
		for _, res := range results {
			if !res.Passed {
				return graded(false, 0)
			}
		}
		return graded(true, q.Points)
	}

	earned := 0.0
	for i, res := range results {
		if !res.Passed {
			continue
		}
		// Results beyond the defined cases are worth 1 point each.
		if i < len(q.TestCases) {
			earned += q.TestCases[i].PointsOrDefault()
		} else {
			earned++
		}
	}
	return graded(earned == q.Points, earned)
}
