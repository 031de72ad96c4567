// Package facematch turns a face embedding distance into a thresholded match
// decision with a 0-100 confidence.
package facematch

import (
	"fmt"
	"math"
	"strconv"

	"kycverify/internal/verification/models"
)

const (
	DefaultThreshold   = 60.0
	DefaultMaxDistance = 1.0
)

// Evaluator is pure and safe for concurrent use.
type Evaluator struct {
	threshold   float64
	maxDistance float64
}

// New returns an evaluator matching at confidence >= threshold, which must lie
// in (0,100]; anything else falls back to DefaultThreshold. maxDistance is
// the distance that maps to zero confidence.
func New(threshold, maxDistance float64) *Evaluator {
	if threshold <= 0 || threshold > 100 || math.IsNaN(threshold) {
		threshold = DefaultThreshold
	}
	if maxDistance <= 0 || math.IsNaN(maxDistance) || math.IsInf(maxDistance, 0) {
		maxDistance = DefaultMaxDistance
	}
	return &Evaluator{threshold: threshold, maxDistance: maxDistance}
}

// Threshold returns the configured confidence threshold.
func (e *Evaluator) Threshold() float64 {
	return e.threshold
}

// Confidence maps distance onto [0,100], rounded to two decimals. It never
// increases as distance grows. NaN and negative distances carry no evidence.
func (e *Evaluator) Confidence(distance float64) float64 {
	if math.IsNaN(distance) || distance < 0 {
		return 0
	}
	c := (1 - distance/e.maxDistance) * 100
	c = math.Max(0, math.Min(100, c))
	return math.Round(c*100) / 100
}

// Evaluate thresholds the distance between two face embeddings.
func (e *Evaluator) Evaluate(distance float64) models.FaceMatchOutcome {
	confidence := e.Confidence(distance)
	if confidence >= e.threshold {
		return models.FaceMatchOutcome{
			IsMatch:    true,
			Confidence: confidence,
			Message:    "Faces match with " + strconv.FormatFloat(confidence, 'f', -1, 64) + "% confidence",
		}
	}
	return models.FaceMatchOutcome{
		IsMatch:    false,
		Confidence: confidence,
		Message:    "Faces do not match",
	}
}

// NoFace is the outcome when no face could be found in the named image.
func NoFace(image string) models.FaceMatchOutcome {
	return models.FaceMatchOutcome{
		IsMatch:    false,
		Confidence: 0,
		Message:    fmt.Sprintf("No face detected in %s image", image),
	}
}
