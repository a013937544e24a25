package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Error prints its formatted block to stderr; the returned error carries
// only the title so cobra (running with SilenceErrors) does not duplicate
// the output.
func TestError_ReturnsTitleOnly(t *testing.T) {
	err := Error("Generation failed", "the footprint is degenerate", nil)
	require.Error(t, err)
	assert.Equal(t, "Generation failed", err.Error())
}

func TestError_SuggestionCountsDoNotChangeTheError(t *testing.T) {
	one := Error("Registry busy", "lock held elsewhere", []string{"retry later"})
	many := Error("Registry busy", "lock held elsewhere", []string{
		"retry later",
		"remove a stale lock file",
	})

	assert.Equal(t, "Registry busy", one.Error())
	assert.Equal(t, one.Error(), many.Error())
}
