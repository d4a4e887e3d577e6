package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameStateString(t *testing.T) {
	assert.Equal(t, "Title", StateTitle.String())
	assert.Equal(t, "Riding", StateRiding.String())
	assert.Equal(t, "Paused", StatePaused.String())
	assert.Equal(t, "Results", StateResults.String())
	assert.Equal(t, "Unknown", GameState(42).String())
}
