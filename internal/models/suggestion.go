package models

import (
	"fmt"
	"time"
)

// SuggestionType is the kind of calendar-health suggestion
type SuggestionType string

const (
	SuggestionResolveConflict       SuggestionType = "ResolveConflict"
	SuggestionMoveEvent             SuggestionType = "MoveEvent"
	SuggestionSuggestBreak          SuggestionType = "SuggestBreak"
	SuggestionPatternAlert          SuggestionType = "PatternAlert"
	SuggestionOptimizeDistribution  SuggestionType = "OptimizeDistribution"
	SuggestionGeneralReorganization SuggestionType = "GeneralReorganization"
)

// Rank orders suggestion types when priorities tie; lower ranks first.
// It returns -1 for unknown types.
func (t SuggestionType) Rank() int {
	switch t {
	case SuggestionResolveConflict:
		return 0
	case SuggestionMoveEvent:
		return 1
	case SuggestionSuggestBreak:
		return 2
	case SuggestionPatternAlert:
		return 3
	case SuggestionOptimizeDistribution:
		return 4
	case SuggestionGeneralReorganization:
		return 5
	}
	return -1
}

func (t SuggestionType) Valid() bool {
	return t.Rank() >= 0
}

func (t *SuggestionType) UnmarshalText(b []byte) error {
	v := SuggestionType(b)
	if !v.Valid() {
		return fmt.Errorf("unknown suggestion type %q", string(b))
	}
	*t = v
	return nil
}

// SuggestionStatus is the lifecycle state of a suggestion:
// Pending -> {Accepted, Rejected, Postponed, Expired}. Postponed may still
// be answered later.
type SuggestionStatus string

const (
	StatusPending   SuggestionStatus = "Pending"
	StatusAccepted  SuggestionStatus = "Accepted"
	StatusRejected  SuggestionStatus = "Rejected"
	StatusPostponed SuggestionStatus = "Postponed"
	StatusExpired   SuggestionStatus = "Expired"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusPostponed, StatusExpired:
		return true
	}
	return false
}

// Open reports whether the suggestion still awaits a final answer
func (s SuggestionStatus) Open() bool {
	switch s {
	case StatusPending, StatusPostponed:
		return true
	case StatusAccepted, StatusRejected, StatusExpired:
		return false
	}
	return false
}

// IsResponse reports whether a user may move a suggestion into s
func (s SuggestionStatus) IsResponse() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusPostponed:
		return true
	case StatusPending, StatusExpired:
		return false
	}
	return false
}

func (s *SuggestionStatus) UnmarshalText(b []byte) error {
	v := SuggestionStatus(b)
	if !v.Valid() {
		return fmt.Errorf("unknown suggestion status %q", string(b))
	}
	*s = v
	return nil
}

// Priority scale, 1 (lowest) to 5 (highest). Ties are broken by
// SuggestionType.Rank, then by CreatedAt.
const (
	PriorityMin = 1
	PriorityMax = 5
)

// SuggestionTTL is how long a pending suggestion stays actionable
const SuggestionTTL = 7 * 24 * time.Hour

// ScheduleSuggestion is a persisted calendar-health suggestion
type ScheduleSuggestion struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	Type           SuggestionType   `json:"type"`
	EventID        *string          `json:"event_id,omitempty"`
	RelatedEventID *string          `json:"related_event_id,omitempty"`
	Description    string           `json:"description"`
	Reason         string           `json:"reason"`
	Priority       int              `json:"priority"`
	SuggestedStart *time.Time       `json:"suggested_start,omitempty"`
	Confidence     float64          `json:"confidence"` // 0..1
	Status         SuggestionStatus `json:"status"`
	// Fingerprint identifies the condition that produced the suggestion
	// so repeated scans don't duplicate it.
	Fingerprint     string     `json:"fingerprint"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	ResponseComment *string    `json:"response_comment,omitempty"`
}

// RespondRequest is the body of POST /schedule-suggestions/:id/respond
type RespondRequest struct {
	Status  SuggestionStatus `json:"status" binding:"required"`
	Comment *string          `json:"comment,omitempty"`
}
