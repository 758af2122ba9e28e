package models

import "time"

type Project struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"-"`
}

// ProjectUpdate carries a partial project change. Nil fields stay as they are.
type ProjectUpdate struct {
	Name  *string
	Color *string
}

// Empty reports whether the update changes nothing.
func (u ProjectUpdate) Empty() bool {
	return u.Name == nil && u.Color == nil
}
