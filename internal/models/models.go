package models

import (
	"time"
)

// SetEntry is a single recorded set. Weight and reps are kept as the raw
// input strings so that a half-filled set can be distinguished from an
// untouched one. A persisted entry never has both fields blank.
type SetEntry struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// Blank reports whether neither field has been filled in.
func (s SetEntry) Blank() bool {
	return s.Weight == "" && s.Reps == ""
}

// ExerciseRecord holds the retained sets for one exercise within a saved
// workout.
type ExerciseRecord struct {
	Name string     `json:"name"`
	Sets []SetEntry `json:"sets"`
}

// Workout is a completed workout record. It is immutable once created and
// is removed only through an explicit delete.
type Workout struct {
	ID          string           `json:"id"`
	Program     string           `json:"program"`
	ProgramName string           `json:"programName"`
	Date        time.Time        `json:"date"`
	Duration    int64            `json:"duration"` // milliseconds
	Exercises   []ExerciseRecord `json:"exercises"`
}

// Checkpoint is a snapshot of the active session, written periodically so
// that an interrupted workout can be offered for restoration on the next
// run.
type Checkpoint struct {
	Program   string    `json:"program"`
	StartTime time.Time `json:"startTime"`
	Duration  int64     `json:"duration"` // milliseconds
	Active    bool      `json:"isActive"`
	Timestamp time.Time `json:"timestamp"`
}

// Draft maps an exercise id to its in-progress set entries. It is stored
// separately from the checkpoint because it changes at a higher frequency.
type Draft map[string][]SetEntry
