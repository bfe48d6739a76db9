package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

// Result count bounds
const (
	DefaultLimit = 6
	MinLimit     = 5
	MaxLimit     = 10
)

// MinDurationMinutes is the shortest recommendation ever returned
const MinDurationMinutes = 10

const (
	minActivityMinutes = 30
	routineMinutes     = 30

	microBreakAt     = 18*time.Hour + 30*time.Minute
	celebrateAt      = 20 * time.Hour
	windDownAt       = 21 * time.Hour
	fallbackAt       = 18 * time.Hour
	defaultMorningAt = 8 * time.Hour
	noon             = 12 * time.Hour

	downtrendPoints    = 5
	downtrendCeiling   = 3.0
	lowMoodCeiling     = 2
	celebrateThreshold = 4.0

	microBreakConfidence = 0.65
	lowMoodBoost         = 0.1
	celebrateConfidence  = 0.6
	windDownConfidence   = 0.35
	fallbackConfidence   = 0.3
)

// ClampLimit maps a requested count to the served range: values <= 0 pick
// def, everything else is clamped to [MinLimit, MaxLimit].
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// RecommendInput is everything the generator needs for one request
type RecommendInput struct {
	// Reference is the day recommendations are generated for
	Reference time.Time
	// Now bounds slot search from below
	Now time.Time
	// Limit is the already clamped result count
	Limit       int
	CurrentMood *int
	Analytics   models.Analytics
	Historical  []models.Event
	Upcoming    []models.Event
	// HasHistory is true when the user has any events or mood entries
	HasHistory bool
	// SearchDays bounds the slot search; DefaultSlotSearchDays when zero
	SearchDays  int
	PickVariant VariantPicker
}

// RecommendResult is the ranked list plus the self-care variants it uses,
// keyed by recommendation id, for recording in the recent store.
type RecommendResult struct {
	Recommendations []models.Recommendation
	Variants        map[string]string
	// Passes counts candidates per pass before dedup and truncation
	Passes map[string]int
}

// Recommend runs the category, mood-trend and routine passes, falls back to
// a single breather when none fire, then deduplicates, ranks and truncates.
func Recommend(in RecommendInput) RecommendResult {
	if in.PickVariant == nil {
		in.PickVariant = FirstVariant
	}
	p := &planner{
		in:       in,
		loc:      in.Reference.Location(),
		occupied: IntervalsFromEvents(in.Upcoming),
		variants: make(map[string]string),
		date:     compactDate(in.Reference),
	}

	category := p.categoryPass()
	mood := p.moodPass()
	routine := p.routinePass()

	recs := make([]models.Recommendation, 0, len(category)+len(mood)+len(routine))
	recs = append(recs, category...)
	recs = append(recs, mood...)
	recs = append(recs, routine...)

	passes := map[string]int{"category": len(category), "mood": len(mood), "routine": len(routine)}
	if len(recs) == 0 {
		recs = append(recs, p.fallback())
		passes["fallback"] = 1
	}

	final := Finalize(recs, in.Limit)

	kept := make(map[string]string)
	for _, r := range final {
		if key, ok := p.variants[r.ID]; ok {
			kept[r.ID] = key
		}
	}

	return RecommendResult{Recommendations: final, Variants: kept, Passes: passes}
}

// Finalize clamps every recommendation, drops repeated ids (first wins),
// sorts by confidence descending then start ascending, and truncates to
// limit when limit > 0.
func Finalize(recs []models.Recommendation, limit int) []models.Recommendation {
	seen := make(map[string]bool, len(recs))
	out := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, sanitize(r))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].SuggestedStart.Before(out[j].SuggestedStart)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sanitize(r models.Recommendation) models.Recommendation {
	r.Confidence = ClampConfidence(r.Confidence)
	if r.DurationMinutes < MinDurationMinutes {
		r.DurationMinutes = MinDurationMinutes
	}
	return r
}

type planner struct {
	in       RecommendInput
	loc      *time.Location
	occupied []Interval
	variants map[string]string
	date     string
}

// slot finds a free start and reserves it so later passes don't collide
func (p *planner) slot(day time.Time, timeOfDay time.Duration, minutes int) time.Time {
	duration := time.Duration(minutes) * time.Minute
	start := FindSlot(SlotQuery{
		Reference: day,
		Now:       p.in.Now,
		TimeOfDay: timeOfDay,
		Duration:  duration,
		Days:      p.in.SearchDays,
	}, p.occupied)
	p.occupied = append(p.occupied, Interval{Start: start, End: start.Add(duration)})
	return start
}

func (p *planner) pick(kind SelfCareKind) SelfCareVariant {
	options := Variants(kind)
	keys := make([]string, len(options))
	for i, v := range options {
		keys[i] = v.Key
	}
	chosen := p.in.PickVariant(kind, keys)
	for _, v := range options {
		if v.Key == chosen {
			return v
		}
	}
	return options[0]
}

func (p *planner) categoryPass() []models.Recommendation {
	snapshots := p.in.Analytics.Snapshots
	if len(snapshots) > p.in.Limit {
		snapshots = snapshots[:p.in.Limit]
	}

	recs := make([]models.Recommendation, 0, len(snapshots))
	for _, snap := range snapshots {
		exemplar, ok := pickExemplar(snap.Events)
		if !ok {
			continue
		}

		minutes := int(exemplar.Duration() / time.Minute)
		if minutes < minActivityMinutes {
			minutes = minActivityMinutes
		}

		local := exemplar.StartTime.In(p.loc)
		start := p.slot(p.in.Reference, TimeOfDay(local), minutes)

		reason := fmt.Sprintf("You made time for %s %d times recently", snap.Name, snap.EventCount)
		var impact *string
		if snap.MeanMood > 0 {
			reason = fmt.Sprintf("Your %s events averaged a mood of %.1f/5 across %d events", snap.Name, snap.MeanMood, snap.EventCount)
			s := fmt.Sprintf("%.0f%% of these left you feeling good", snap.PositiveShare*100)
			impact = &s
		}

		categoryID := snap.CategoryID
		recs = append(recs, models.Recommendation{
			ID:              fmt.Sprintf("category-%s-%s", snap.CategoryID, p.date),
			Title:           fmt.Sprintf("Make time for %s", snap.Name),
			Subtitle:        fmt.Sprintf("Like %q on %s", exemplar.Title, local.Format("Mon Jan 2")),
			Reason:          reason,
			Type:            models.RecommendationActivity,
			SuggestedStart:  start,
			DurationMinutes: minutes,
			Confidence:      CategoryConfidence(snap, p.in.Analytics.RecentMoodAverage),
			CategoryID:      &categoryID,
			MoodImpact:      impact,
		})
	}
	return recs
}

// pickExemplar returns the highest rated event, most recent on ties.
// Unrated events rank below any rating.
func pickExemplar(events []models.Event) (models.Event, bool) {
	if len(events) == 0 {
		return models.Event{}, false
	}
	best := events[0]
	for _, e := range events[1:] {
		br, er := ratingOrZero(best), ratingOrZero(e)
		if er > br || (er == br && e.StartTime.After(best.StartTime)) {
			best = e
		}
	}
	return best, true
}

func ratingOrZero(e models.Event) int {
	if e.MoodRating == nil {
		return 0
	}
	return *e.MoodRating
}

func (p *planner) moodPass() []models.Recommendation {
	trend := p.in.Analytics.MoodTrend
	recs := make([]models.Recommendation, 0, 2)

	latest, hasLatest := p.in.Analytics.LatestMood()
	if p.in.CurrentMood != nil {
		latest, hasLatest = *p.in.CurrentMood, true
	}
	lowNow := hasLatest && latest <= lowMoodCeiling

	downtrend := false
	if avg, ok := meanOfLast(trend, downtrendPoints); ok && avg <= downtrendCeiling {
		downtrend = true
	}

	if downtrend || lowNow {
		v := p.pick(KindMicroBreak)
		id := fmt.Sprintf("wellbeing-%s-%s", v.Key, p.date)
		confidence := microBreakConfidence
		if lowNow {
			confidence += lowMoodBoost
		}
		impact := "Short breaks tend to lift low-mood days"
		recs = append(recs, models.Recommendation{
			ID:              id,
			Title:           v.Title,
			Subtitle:        v.Subtitle,
			Reason:          v.Reason,
			Type:            models.RecommendationWellbeing,
			SuggestedStart:  p.slot(p.in.Reference, microBreakAt, v.Minutes),
			DurationMinutes: v.Minutes,
			Confidence:      Round2(confidence),
			MoodImpact:      &impact,
		})
		p.variants[id] = KindMicroBreak.RecentKey(v.Key)
	}

	if avg := p.in.Analytics.RecentMoodAverage; avg != nil && *avg >= celebrateThreshold {
		v := p.pick(KindCelebrate)
		id := fmt.Sprintf("reflection-%s-%s", v.Key, p.date)
		recs = append(recs, models.Recommendation{
			ID:              id,
			Title:           v.Title,
			Subtitle:        v.Subtitle,
			Reason:          fmt.Sprintf("%s (recent average %.1f/5)", v.Reason, *avg),
			Type:            models.RecommendationReflection,
			SuggestedStart:  p.slot(p.in.Reference.AddDate(0, 0, 1), celebrateAt, v.Minutes),
			DurationMinutes: v.Minutes,
			Confidence:      Round2(celebrateConfidence + clamp((*avg-celebrateThreshold)*0.1, 0, 0.1)),
		})
		p.variants[id] = KindCelebrate.RecentKey(v.Key)
	}

	if len(recs) > p.in.Limit {
		recs = recs[:p.in.Limit]
	}
	return recs
}

func (p *planner) routinePass() []models.Recommendation {
	if len(p.in.Analytics.Snapshots) == 0 {
		if !p.in.HasHistory {
			return nil
		}
		v := p.pick(KindWindDown)
		id := fmt.Sprintf("rest-winddown-%s", p.date)
		p.variants[id] = KindWindDown.RecentKey(v.Key)
		return []models.Recommendation{{
			ID:              id,
			Title:           v.Title,
			Subtitle:        v.Subtitle,
			Reason:          v.Reason,
			Type:            models.RecommendationRest,
			SuggestedStart:  p.slot(p.in.Reference, windDownAt, v.Minutes),
			DurationMinutes: v.Minutes,
			Confidence:      windDownConfidence,
		}}
	}

	at, avg, n, ok := morningCluster(p.in.Historical, p.loc)
	if !ok {
		return nil
	}

	return []models.Recommendation{{
		ID:              fmt.Sprintf("routine-morning-%s", p.date),
		Title:           "Protect your morning routine",
		Subtitle:        fmt.Sprintf("Your best-rated events start around %s", formatClock(at)),
		Reason:          fmt.Sprintf("Well-rated events before noon averaged a mood of %.1f/5 across %d ratings", avg, n),
		Type:            models.RecommendationRoutine,
		SuggestedStart:  p.slot(p.in.Reference, at, routineMinutes),
		DurationMinutes: routineMinutes,
		Confidence:      Round2(clamp(0.5+(avg-celebrateThreshold)*0.2+math.Min(0.15, float64(n)*0.03), 0.2, 0.9)),
	}}
}

// morningCluster looks for events rated at least PositiveMoodThreshold
// that start before noon. At least two are needed and their mean rating
// must reach 4. It returns their mean start time rounded to 15 minutes.
func morningCluster(events []models.Event, loc *time.Location) (time.Duration, float64, int, bool) {
	var sum, minutes float64
	var n int
	for _, e := range events {
		if e.MoodRating == nil || *e.MoodRating < PositiveMoodThreshold {
			continue
		}
		tod := TimeOfDay(e.StartTime.In(loc))
		if tod >= noon {
			continue
		}
		n++
		sum += float64(*e.MoodRating)
		minutes += tod.Minutes()
	}
	if n < 2 {
		return defaultMorningAt, 0, n, false
	}
	avg := sum / float64(n)
	if avg < celebrateThreshold {
		return defaultMorningAt, avg, n, false
	}

	rounded := math.Round(minutes/float64(n)/15) * 15
	at := time.Duration(rounded) * time.Minute
	if at >= noon {
		at = noon - 15*time.Minute
	}
	return at, Round2(avg), n, true
}

func (p *planner) fallback() models.Recommendation {
	return models.Recommendation{
		ID:              fmt.Sprintf("fallback-breather-%s", p.date),
		Title:           "Take a breather",
		Subtitle:        "Fifteen minutes just for you",
		Reason:          "We don't know your rhythm yet; a short pause is always a good start",
		Type:            models.RecommendationWellbeing,
		SuggestedStart:  AtTimeOfDay(p.in.Reference, fallbackAt),
		DurationMinutes: 15,
		Confidence:      fallbackConfidence,
	}
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int((d%time.Hour)/time.Minute))
}
