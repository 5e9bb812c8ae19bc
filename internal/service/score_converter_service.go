package service

import (
	"fmt"
	"math"
)

type ScoreConverterService interface {
	// ToPercentage converts a raw score to a percentage of maxScore, rounded to two
	// decimals.
	ToPercentage(rawScore, maxScore float64) (float64, error)
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

func (s *scoreConverterServiceImpl) ToPercentage(rawScore, maxScore float64) (float64, error) {
	if maxScore <= 0 {
		return 0, fmt.Errorf("max score %.2f must be positive", maxScore)
	}
	if rawScore < 0 {
		return 0, fmt.Errorf("raw score %.2f is negative", rawScore)
	}
	// Extra judge results can push partial scores past the snapshot total.
	pct := math.Min(rawScore/maxScore*100, 100)
	return math.Round(pct*100) / 100, nil
}
