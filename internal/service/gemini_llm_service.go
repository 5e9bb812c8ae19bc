package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Hireboard/config"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const maxAIRating = 5.0

// ErrLLMUnavailable is returned when no Gemini API key is configured.
var ErrLLMUnavailable = errors.New("gemini client not initialized")

// GeminiLLMService reviews subjective answers. Its output is advisory only.
type GeminiLLMService interface {
	ReviewSubjectiveAnswer(ctx context.Context, question *model.QuestionSnapshot, answer string) (feedback string, rating float64, err error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{client: nil}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client.GenerativeModel(cfg.Gemini.Model)}, nil
}

// matchedKeywords returns the expected keywords present in answer, case-insensitively.
func matchedKeywords(keywords []string, answer string) []string {
	lower := strings.ToLower(answer)
	var matched []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func buildReviewPrompt(question *model.QuestionSnapshot, answer string) string {
	var b strings.Builder
	b.WriteString("You are an experienced technical interviewer reviewing a candidate's written answer.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(question.Content)
	b.WriteString("\n---\n\n")

	if len(question.ExpectedKeywords) > 0 {
		matched := matchedKeywords(question.ExpectedKeywords, answer)
		fmt.Fprintf(&b, "The interviewer expects these concepts to be covered: %s.\n", strings.Join(question.ExpectedKeywords, ", "))
		fmt.Fprintf(&b, "A literal scan found %d of %d in the answer", len(matched), len(question.ExpectedKeywords))
		if len(matched) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(matched, ", "))
		}
		b.WriteString(". Judge coverage by meaning, not by wording.\n")
	}
	if question.MaxWordCount != nil {
		words := len(strings.Fields(answer))
		fmt.Fprintf(&b, "The answer should stay within %d words; it has %d.\n", *question.MaxWordCount, words)
	}

	b.WriteString("\nCandidate's Answer:\n---\n")
	b.WriteString(answer)
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, `Evaluate correctness, depth and clarity. Format your response strictly as:
Rating: [a number from 0.0 to %.1f]
Feedback:
[Concise feedback for the hiring team: strong points, gaps, and follow-up questions worth asking]
`, maxAIRating)
	return b.String()
}

// parseReview splits a "Rating: ... Feedback: ..." response.
func parseReview(raw string) (float64, string, error) {
	const ratingPrefix, feedbackPrefix = "Rating:", "Feedback:"

	ratingIdx := strings.Index(raw, ratingPrefix)
	if ratingIdx == -1 {
		return 0, strings.TrimSpace(raw), fmt.Errorf("response does not contain %q", ratingPrefix)
	}
	rest := raw[ratingIdx+len(ratingPrefix):]
	line := rest
	if nl := strings.Index(rest, "\n"); nl != -1 {
		line = rest[:nl]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, strings.TrimSpace(raw), fmt.Errorf("empty rating")
	}
	// Accept "4", "4.5" and "4/5".
	ratingStr := strings.SplitN(fields[0], "/", 2)[0]
	rating, err := strconv.ParseFloat(ratingStr, 64)
	if err != nil {
		return 0, strings.TrimSpace(raw), fmt.Errorf("could not parse rating %q: %w", fields[0], err)
	}
	rating = min(max(rating, 0), maxAIRating)

	feedback := ""
	if fbIdx := strings.Index(raw, feedbackPrefix); fbIdx != -1 {
		feedback = strings.TrimSpace(raw[fbIdx+len(feedbackPrefix):])
	} else if nl := strings.Index(rest, "\n"); nl != -1 {
		feedback = strings.TrimSpace(rest[nl+1:])
	}
	return rating, feedback, nil
}

func (s *geminiLLMService) ReviewSubjectiveAnswer(ctx context.Context, question *model.QuestionSnapshot, answer string) (string, float64, error) {
	if s.client == nil {
		return "", 0, ErrLLMUnavailable
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(buildReviewPrompt(question, answer)))
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.QuestionID).Msg("Gemini API error during review")
		return "", 0, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", 0, fmt.Errorf("gemini returned no content")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", 0, fmt.Errorf("gemini returned no text content")
	}

	rating, feedback, err := parseReview(text.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text.String()).Msg("Failed to parse rating from Gemini response")
		return "", 0, err
	}
	return feedback, rating, nil
}
