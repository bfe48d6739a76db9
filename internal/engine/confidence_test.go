package engine

import (
	"math"
	"testing"

	"github.com/JonnyWalker81/tempo/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestCategoryConfidence(t *testing.T) {
	tests := []struct {
		name   string
		mean   float64
		count  int
		recent *float64
		want   float64
	}{
		{"unrated, no mood", 0, 0, nil, 0.4},
		{"unrated with samples", 0, 5, nil, 0.5},
		{"low mean floors at 0.3", 1, 1, nil, 0.32},
		{"high mean capped", 5, 20, nil, 0.95},
		{"participation capped at 0.2", 3, 50, nil, 0.8},
		{"recent mood bonus", 4, 5, floatPtr(5), 0.95},
		{"recent mood penalty", 4, 5, floatPtr(1), 0.8},
		{"recent mood neutral", 4, 5, floatPtr(3), 0.9},
		{"mood bonus capped", 3, 0, floatPtr(10), 0.7},
		{"floor at 0.2", 1, 0, floatPtr(-10), 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := models.CategorySnapshot{MeanMood: tt.mean, EventCount: tt.count}
			got := CategoryConfidence(snap, tt.recent)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CategoryConfidence() = %v, want %v", got, tt.want)
			}
			if got < 0.2 || got > 0.95 {
				t.Errorf("confidence %v outside [0.2, 0.95]", got)
			}
		})
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0.5, 0.5},
		{1.7, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
