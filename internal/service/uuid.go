package service

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a time-ordered UUIDv7 so ids created in one generation run
// sort in creation order. It falls back to a random UUID if the clock
// source fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// checkID rejects ids that are not UUIDs before they reach storage
func checkID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid(field, "is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return invalid(field, "must be a UUID")
	}
	return nil
}
