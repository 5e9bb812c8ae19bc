package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreConverter_ToPercentage(t *testing.T) {
	conv := NewScoreConverterService()

	pct, err := conv.ToPercentage(7, 30)
	require.NoError(t, err)
	assert.Equal(t, 23.33, pct)

	pct, err = conv.ToPercentage(35, 30)
	require.NoError(t, err)
	assert.Equal(t, 100.0, pct)

	_, err = conv.ToPercentage(5, 0)
	assert.Error(t, err)
	_, err = conv.ToPercentage(-1, 10)
	assert.Error(t, err)
}
