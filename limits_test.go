package jce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitsOrDefaultFallsBackOnNil(t *testing.T) {
	assert.Equal(t, DefaultLimits, limitsOrDefault(nil))
}

func TestLimitsOrDefaultUsesOverride(t *testing.T) {
	custom := Limits{MaxDepth: 3, MaxContainerLen: 4, MaxStringLen: 5, MaxBytesLen: 6}
	assert.Equal(t, custom, limitsOrDefault(&custom))
}
