package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("starting attempt: %w", Conflict("attempt %d already submitted", 7))

	assert.True(t, Is(err, CodeConflict))
	assert.False(t, Is(err, CodeNotFound))
	assert.Equal(t, "starting attempt: attempt 7 already submitted", err.Error())
}

func TestWithDetailsCopies(t *testing.T) {
	base := NotFound("no attempts")
	withDetails := WithDetails(base, "2 attempts skipped")

	e, ok := As(withDetails)
	require.True(t, ok)
	assert.Equal(t, []string{"2 attempts skipped"}, e.Details)

	orig, _ := As(base)
	assert.Empty(t, orig.Details)
}

func TestWithDetailsIgnoresPlainErrors(t *testing.T) {
	plain := fmt.Errorf("boom")
	assert.Same(t, plain, WithDetails(plain, "x"))
}
