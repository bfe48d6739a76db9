package engine

import (
	"math"

	"github.com/JonnyWalker81/tempo/internal/models"
)

// Confidence bounds for category recommendations. Never exactly 0 or 1.
const (
	minCategoryConfidence = 0.2
	maxCategoryConfidence = 0.95
)

// CategoryConfidence scores how strongly a category's history supports
// recommending it again:
//
//	base  = clamp(meanMood/5, 0.3, 0.95), or 0.4 when nothing is rated
//	bonus = min(0.2, eventCount*0.02)
//	mood  = clamp((recentAvg-3)*0.05, -0.1, 0.1), or 0 without mood data
//
// The sum is clamped to [0.2, 0.95] and rounded to two decimals.
func CategoryConfidence(snap models.CategorySnapshot, recentMood *float64) float64 {
	base := 0.4
	if snap.MeanMood > 0 {
		base = clamp(snap.MeanMood/5, 0.3, 0.95)
	}

	participation := math.Min(0.2, float64(snap.EventCount)*0.02)

	var mood float64
	if recentMood != nil {
		mood = clamp((*recentMood-3)*0.05, -0.1, 0.1)
	}

	return Round2(clamp(base+participation+mood, minCategoryConfidence, maxCategoryConfidence))
}

// ClampConfidence keeps any emitted confidence inside [0, 1]
func ClampConfidence(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}
