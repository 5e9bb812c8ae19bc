package dto

import "encoding/json"

type StartAttemptDTO struct {
	TestID uint `json:"test_id" binding:"required"`
}

// SubmittedAnswerDTO is one answer of a submission. SelectedOption carries the
// chosen option text, the code, or the essay depending on the question type.
// TestCaseResults is the judge output for coding questions and is decoded
// leniently during grading.
type SubmittedAnswerDTO struct {
	QuestionID      uint            `json:"question_id" binding:"required"`
	SelectedOption  string          `json:"selected_option"`
	TestCaseResults json.RawMessage `json:"test_case_results,omitempty" swaggertype:"array,object"`
}

type TestAttemptSubmitDTO struct {
	Answers []SubmittedAnswerDTO `json:"answers" binding:"dive"`
}
