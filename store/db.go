package store

import (
	"github.com/DanielSjoholm/trainlog/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// Workouts returns every saved workout in insertion order.
	Workouts() ([]models.Workout, error)
	// AppendWorkout adds a completed workout to the collection and
	// persists the whole collection.
	AppendWorkout(w *models.Workout) error
	// DeleteWorkout removes the workout with the given id.
	DeleteWorkout(id string) error
	// MostRecentWorkout returns the workout with the latest date for the
	// given program, or nil if the program has none. On equal dates the
	// earliest stored record wins.
	MostRecentWorkout(programID string) (*models.Workout, error)
	// Checkpoint returns the stored session checkpoint, or nil if no
	// checkpoint exists or the stored bytes cannot be decoded.
	Checkpoint() (*models.Checkpoint, error)
	// SaveCheckpoint overwrites the session checkpoint.
	SaveCheckpoint(c *models.Checkpoint) error
	// Draft returns the stored draft form values, or nil if absent or
	// undecodable.
	Draft() (models.Draft, error)
	// SaveDraft overwrites the draft form values.
	SaveDraft(d models.Draft) error
	// ClearSession removes the checkpoint and the draft form values.
	ClearSession() error
	// Close ends the database connection.
	Close() error
}
