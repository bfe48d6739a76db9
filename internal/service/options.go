package service

import (
	"time"

	"github.com/JonnyWalker81/tempo/internal/engine"
	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/recent"
)

// Options tunes the engine windows shared by the services.
// Zero fields fall back to DefaultOptions.
type Options struct {
	LookbackDays     int
	LookaheadDays    int
	DistributionDays int
	DefaultLimit     int
	RecentWindow     time.Duration
	SuggestionMaxAge time.Duration
	// Location buckets events into days when a request names none
	Location *time.Location
	// Now is the clock; tests pin it
	Now func() time.Time
}

// DefaultOptions matches the configuration defaults
func DefaultOptions() Options {
	return Options{
		LookbackDays:     45,
		LookaheadDays:    engine.DefaultSlotSearchDays,
		DistributionDays: 14,
		DefaultLimit:     engine.DefaultLimit,
		RecentWindow:     recent.DefaultWindow,
		SuggestionMaxAge: models.SuggestionTTL,
		Location:         time.UTC,
		Now:              time.Now,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.LookbackDays <= 0 {
		o.LookbackDays = d.LookbackDays
	}
	if o.LookaheadDays <= 0 {
		o.LookaheadDays = d.LookaheadDays
	}
	if o.DistributionDays <= 0 {
		o.DistributionDays = d.DistributionDays
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = d.DefaultLimit
	}
	if o.RecentWindow <= 0 {
		o.RecentWindow = d.RecentWindow
	}
	if o.SuggestionMaxAge <= 0 {
		o.SuggestionMaxAge = d.SuggestionMaxAge
	}
	if o.Location == nil {
		o.Location = d.Location
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	return o
}

func (o Options) now() time.Time {
	return o.Now().In(o.Location)
}
