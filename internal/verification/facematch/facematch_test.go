package facematch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence(t *testing.T) {
	e := New(DefaultThreshold, DefaultMaxDistance)

	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 100},
		{0.015, 98.5},
		{0.4, 60},
		{0.6, 40},
		{1.0, 0},
		{1.7, 0},
		{-0.2, 0},
		{math.NaN(), 0},
		{0.123456, 87.65},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, e.Confidence(tt.distance), 1e-9, "distance %v", tt.distance)
	}
}

func TestConfidence_Monotonic(t *testing.T) {
	e := New(DefaultThreshold, DefaultMaxDistance)
	prev := e.Confidence(0)
	for d := 0.0; d <= 1.5; d += 0.01 {
		c := e.Confidence(d)
		assert.LessOrEqual(t, c, prev, "distance %v", d)
		prev = c
	}
}

func TestEvaluate(t *testing.T) {
	e := New(DefaultThreshold, DefaultMaxDistance)

	match := e.Evaluate(0.015)
	assert.True(t, match.IsMatch)
	assert.Equal(t, 98.5, match.Confidence)
	assert.Equal(t, "Faces match with 98.5% confidence", match.Message)

	edge := e.Evaluate(0.4)
	assert.True(t, edge.IsMatch)

	miss := e.Evaluate(0.55)
	assert.False(t, miss.IsMatch)
	assert.Equal(t, 45.0, miss.Confidence)
	assert.Equal(t, "Faces do not match", miss.Message)
}

func TestEvaluate_MatchesExactlyAtThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		distance  float64
		want      bool
	}{
		{"on the threshold", 60, 0.4, true},
		{"just below", 60, 0.4001, false},
		{"lowest threshold", 0.01, 0.9999, true},
		{"no evidence under lowest threshold", 0.01, math.NaN(), false},
		{"full threshold needs zero distance", 100, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := New(tt.threshold, DefaultMaxDistance).Evaluate(tt.distance)
			assert.Equal(t, tt.want, out.IsMatch)
			assert.Equal(t, out.Confidence >= tt.threshold, out.IsMatch)
		})
	}
}

func TestNew_ZeroThresholdFallsBack(t *testing.T) {
	e := New(0, DefaultMaxDistance)
	assert.Equal(t, DefaultThreshold, e.Threshold())
	assert.False(t, e.Evaluate(math.NaN()).IsMatch)
}

func TestEvaluate_ScaledMaxDistance(t *testing.T) {
	e := New(50, 2.0)
	out := e.Evaluate(0.5)
	assert.Equal(t, 75.0, out.Confidence)
	assert.True(t, out.IsMatch)
}

func TestNew_InvalidSettingsFallBack(t *testing.T) {
	e := New(150, -1)
	assert.Equal(t, DefaultThreshold, e.Threshold())
	assert.Equal(t, 60.0, e.Confidence(0.4))
}

func TestNoFace(t *testing.T) {
	out := NoFace("selfie")
	assert.False(t, out.IsMatch)
	assert.Zero(t, out.Confidence)
	assert.Equal(t, "No face detected in selfie image", out.Message)
}
