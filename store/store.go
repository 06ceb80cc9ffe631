// Package store connects to the data store and manages saved workouts and
// the active session checkpoint.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/DanielSjoholm/trainlog/internal/models"
)

var errAlreadyRunning = errors.New(
	"is trainlog already running? Only one instance can be active at a time",
)

const (
	workoutsBucket = "workouts"
	sessionBucket  = "session"
)

// Keys within the buckets. The whole workout collection is stored as one
// JSON blob so every mutation is an all-or-nothing write.
var (
	workoutsKey   = []byte("workouts")
	checkpointKey = []byte("workout-session-checkpoint")
	draftKey      = []byte("workout-draft-form")
	versionKey    = []byte("schema_version")
)

const schemaVersion = "1"

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) Workouts() ([]models.Workout, error) {
	var raw []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(workoutsBucket)).Get(workoutsKey)
		if v != nil {
			raw = append(raw, v...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var workouts []models.Workout

	err = json.Unmarshal(raw, &workouts)
	if err != nil {
		// a corrupt collection is treated as empty rather than failing
		// startup
		slog.Warn("discarding unreadable workout collection", "error", err)

		return nil, nil
	}

	return workouts, nil
}

func (c *Client) saveWorkouts(workouts []models.Workout) error {
	value, err := json.Marshal(workouts)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(workoutsBucket)).Put(workoutsKey, value)
	})
}

func (c *Client) AppendWorkout(w *models.Workout) error {
	workouts, err := c.Workouts()
	if err != nil {
		return err
	}

	workouts = append(workouts, *w)

	return c.saveWorkouts(workouts)
}

func (c *Client) DeleteWorkout(id string) error {
	workouts, err := c.Workouts()
	if err != nil {
		return err
	}

	for i := range workouts {
		if workouts[i].ID == id {
			workouts = append(workouts[:i], workouts[i+1:]...)

			return c.saveWorkouts(workouts)
		}
	}

	return errors.New("workout not found: " + id)
}

func (c *Client) MostRecentWorkout(programID string) (*models.Workout, error) {
	workouts, err := c.Workouts()
	if err != nil {
		return nil, err
	}

	var latest *models.Workout

	for i := range workouts {
		w := workouts[i]

		if w.Program != programID {
			continue
		}
		// strictly after, so the earliest stored record wins a date tie
		if latest == nil || w.Date.After(latest.Date) {
			latest = &workouts[i]
		}
	}

	return latest, nil
}

func (c *Client) Checkpoint() (*models.Checkpoint, error) {
	var raw []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(sessionBucket)).Get(checkpointKey)
		if v != nil {
			raw = append(raw, v...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var chk models.Checkpoint

	err = json.Unmarshal(raw, &chk)
	if err != nil {
		slog.Warn("discarding unreadable session checkpoint", "error", err)

		return nil, nil
	}

	return &chk, nil
}

func (c *Client) SaveCheckpoint(chk *models.Checkpoint) error {
	value, err := json.Marshal(chk)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put(checkpointKey, value)
	})
}

func (c *Client) Draft() (models.Draft, error) {
	var raw []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(sessionBucket)).Get(draftKey)
		if v != nil {
			raw = append(raw, v...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var draft models.Draft

	err = json.Unmarshal(raw, &draft)
	if err != nil {
		slog.Warn("discarding unreadable draft form values", "error", err)

		return nil, nil
	}

	return draft, nil
}

func (c *Client) SaveDraft(d models.Draft) error {
	value, err := json.Marshal(d)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put(draftKey, value)
	})
}

func (c *Client) ClearSession() error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		err := b.Delete(checkpointKey)
		if err != nil {
			return err
		}

		return b.Delete(draftKey)
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist
	// already
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(workoutsBucket))
		if err != nil {
			return err
		}

		if b.Get(versionKey) == nil {
			err = b.Put(versionKey, []byte(schemaVersion))
			if err != nil {
				return err
			}
		}

		_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))

		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
