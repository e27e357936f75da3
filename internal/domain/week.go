package domain

import "time"

// VisualEvent is a read-only projection of a Shift onto one calendar day.
// A shift crossing midnight yields two VisualEvents: the fragment on its
// start day and a continuation fragment on the next day.
type VisualEvent struct {
	Shift
	VisualStart    time.Time `json:"visualStart"`
	VisualEnd      time.Time `json:"visualEnd"`
	IsContinuation bool      `json:"isContinuation"`
}
