package models

import (
	"fmt"
	"time"
)

// SessionStatus is the state of a work session. Finished and cancelled are
// terminal.
type SessionStatus string

const (
	StatusRunning   SessionStatus = "running"
	StatusFinished  SessionStatus = "finished"
	StatusCancelled SessionStatus = "cancelled"
)

// ParseSessionStatus validates a stored status value.
func ParseSessionStatus(s string) (SessionStatus, error) {
	switch st := SessionStatus(s); st {
	case StatusRunning, StatusFinished, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown session status %q", s)
	}
}

// Terminal reports whether no further transition is allowed.
func (s SessionStatus) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// Session is a timed unit of work owned by one user.
type Session struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"-"`
	ProjectID   *int64        `json:"project_id,omitempty"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     *time.Time    `json:"end_time,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      SessionStatus `json:"status"`
}

// Elapsed returns how long the session has been running at now, or its
// final length once it has an end time.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}

// FinishedSession is a finished session together with its tags.
type FinishedSession struct {
	ID          int64     `json:"id"`
	ProjectID   *int64    `json:"project_id,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
}

// Duration is the tracked length of the session.
func (s *FinishedSession) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
