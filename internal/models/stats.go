package models

import "time"

// Stats aggregates finished sessions over a time window.
type Stats struct {
	Since     *time.Time
	Sessions  int
	Total     time.Duration
	ByTag     map[string]time.Duration
	ByProject map[int64]time.Duration // key 0 collects sessions without a project
}
