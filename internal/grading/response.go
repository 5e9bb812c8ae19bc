package grading

import (
	"bytes"
	"encoding/json"

	"github.com/lshigami/Hireboard/internal/model"
)

// ResponseFor builds the response variant matching the question type from the raw
// submission. rawResults is the judge output for coding questions and is ignored
// otherwise.
func ResponseFor(q *model.Question, submitted string, rawResults json.RawMessage) Response {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		return ChoiceResponse{Selected: submitted}
	case model.QuestionTypeCoding:
		return decodeResults(rawResults)
	default:
		return TextResponse{Text: submitted}
	}
}

func decodeResults(raw json.RawMessage) CodeResponse {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return CodeResponse{Malformed: true}
	}
	var results []model.TestCaseResult
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return CodeResponse{Malformed: true}
	}
	if results == nil {
		results = []model.TestCaseResult{}
	}
	return CodeResponse{Results: results}
}
