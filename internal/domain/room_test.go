package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLink(t *testing.T) {
	a := NewLink()
	b := NewLink()

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Regexp(t, "^[0-9a-f]+$", a)
}

func TestEstimationType(t *testing.T) {
	assert.True(t, EstimationStoryPoints.Valid())
	assert.True(t, EstimationHours.Valid())
	assert.False(t, EstimationType("tshirt").Valid())

	points := EstimationStoryPoints.Scale()
	require.NotEmpty(t, points)
	assert.Equal(t, "0.5", points[0])
	assert.Equal(t, "89", points[len(points)-1])

	hours := EstimationHours.Scale()
	require.NotEmpty(t, hours)
	assert.Equal(t, "1", hours[0])
	assert.Equal(t, "64", hours[len(hours)-1])
}
