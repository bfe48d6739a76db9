// Package calendar converts between iCalendar data and the event and
// recommendation models.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/JonnyWalker81/tempo/internal/models"
)

const (
	productID = "-//tempo//scheduling engine//EN"

	// PropMoodRating carries a 1-5 rating on exported or hand-edited events
	PropMoodRating = "X-TEMPO-MOOD"
	// PropConfidence carries a recommendation's confidence, two decimals
	PropConfidence = "X-TEMPO-CONFIDENCE"

	defaultEventLength = time.Hour
	maxOccurrences     = 500
)

// eventNamespace derives stable event ids from iCalendar UIDs so the same
// file can be imported twice without creating duplicates
var eventNamespace = uuid.MustParse("7d4a8f62-43a1-4f0e-9d55-6b8a6f1f2c11")

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ErrEmptyCalendar is returned by Encode for an empty list; a VCALENDAR
// needs at least one component
var ErrEmptyCalendar = errors.New("calendar has no events")

// ImportOptions controls Decode
type ImportOptions struct {
	UserID string
	// Location interprets floating times; UTC when nil
	Location *time.Location
	// From and To bound recurring event expansion. Single events are
	// kept regardless.
	From time.Time
	To   time.Time
}

// Import is the result of decoding a calendar
type Import struct {
	Events     []models.Event
	Categories []models.Category
	// Skipped counts cancelled, all-day and malformed events
	Skipped int
}

// Decode reads every VEVENT in r. Recurring events are expanded between
// From and To. The first CATEGORIES value becomes the event's category.
func Decode(r io.Reader, opts ImportOptions) (*Import, error) {
	if opts.UserID == "" {
		return nil, errors.New("user id is required")
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	out := &Import{Events: []models.Event{}, Categories: []models.Category{}}
	seenCategory := make(map[string]bool)

	dec := ical.NewDecoder(r)
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, ev := range cal.Events() {
			base, ok := parseEvent(ev, opts.UserID, loc)
			if !ok {
				out.Skipped++
				continue
			}

			if base.Category != nil && !seenCategory[base.Category.ID] {
				seenCategory[base.Category.ID] = true
				out.Categories = append(out.Categories, *base.Category)
			}

			occurrences, err := expand(ev, base, loc, opts.From, opts.To)
			if err != nil {
				return nil, err
			}
			out.Events = append(out.Events, occurrences...)
		}
	}

	return out, nil
}

func parseEvent(ev ical.Event, userID string, loc *time.Location) (models.Event, bool) {
	if status, _ := ev.Props.Text(ical.PropStatus); strings.EqualFold(status, "CANCELLED") {
		return models.Event{}, false
	}

	startProp := ev.Props.Get(ical.PropDateTimeStart)
	if startProp == nil || startProp.ValueType() == ical.ValueDate {
		return models.Event{}, false
	}
	start, err := ev.DateTimeStart(loc)
	if err != nil {
		return models.Event{}, false
	}
	end, err := ev.DateTimeEnd(loc)
	if err != nil || !end.After(start) {
		end = start.Add(defaultEventLength)
	}

	uid, _ := ev.Props.Text(ical.PropUID)
	title, _ := ev.Props.Text(ical.PropSummary)
	if strings.TrimSpace(title) == "" {
		title = "Untitled event"
	}

	e := models.Event{
		ID:        uid,
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		StartTime: start,
		EndTime:   end,
	}

	if desc, _ := ev.Props.Text(ical.PropDescription); strings.TrimSpace(desc) != "" {
		d := strings.TrimSpace(desc)
		e.Description = &d
	}

	if p := ev.Props.Get(PropMoodRating); p != nil {
		if rating, err := strconv.Atoi(strings.TrimSpace(p.Value)); err == nil && models.ValidMoodRating(rating) {
			e.MoodRating = &rating
		}
	}

	if cat := firstCategory(ev); cat != "" {
		id := slugPattern.ReplaceAllString(strings.ToLower(cat), "-")
		id = strings.Trim(id, "-")
		if id != "" {
			e.CategoryID = &id
			e.Category = &models.Category{ID: id, UserID: userID, Name: cat}
		}
	}

	return e, true
}

func firstCategory(ev ical.Event) string {
	p := ev.Props.Get(ical.PropCategories)
	if p == nil {
		return ""
	}
	text, err := p.Text()
	if err != nil {
		text = p.Value
	}
	first, _, _ := strings.Cut(text, ",")
	return strings.TrimSpace(first)
}

// expand returns one event per occurrence with ids derived from the UID and
// occurrence start
func expand(ev ical.Event, base models.Event, loc *time.Location, from, to time.Time) ([]models.Event, error) {
	set, err := ev.RecurrenceSet(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to read recurrence of %q: %w", base.Title, err)
	}
	if set == nil {
		base.ID = eventID(base.ID, base.StartTime)
		return []models.Event{base}, nil
	}
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return nil, fmt.Errorf("recurring event %q needs an expansion window", base.Title)
	}

	duration := base.Duration()
	starts := set.Between(from, to, true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	out := make([]models.Event, 0, len(starts))
	for _, start := range starts {
		e := base
		e.StartTime = start
		e.EndTime = start.Add(duration)
		e.ID = eventID(base.ID, start)
		out = append(out, e)
	}
	return out, nil
}

func eventID(uid string, start time.Time) string {
	if uid == "" {
		return uuid.NewString()
	}
	return uuid.NewSHA1(eventNamespace, []byte(uid+"|"+start.UTC().Format(time.RFC3339))).String()
}

// Encode writes recommendations as a calendar of VEVENTs. stamp is the
// DTSTAMP of every event.
func Encode(w io.Writer, recs []models.Recommendation, stamp time.Time) error {
	if len(recs) == 0 {
		return ErrEmptyCalendar
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, r := range recs {
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, r.ID+"@tempo")
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeStart, r.SuggestedStart.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeEnd, r.SuggestedEnd().UTC())
		ev.Props.SetText(ical.PropSummary, r.Title)
		if desc := describe(r); desc != "" {
			ev.Props.SetText(ical.PropDescription, desc)
		}
		ev.Props.SetText(ical.PropCategories, string(r.Type))

		confidence := ical.NewProp(PropConfidence)
		confidence.Value = strconv.FormatFloat(r.Confidence, 'f', 2, 64)
		ev.Props.Set(confidence)
		cal.Children = append(cal.Children, ev.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func describe(r models.Recommendation) string {
	parts := []string{r.Subtitle, r.Reason}
	if r.MoodImpact != nil {
		parts = append(parts, *r.MoodImpact)
	}
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
