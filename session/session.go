// Package session operates the active workout session and handles the
// recovery of interrupted workouts.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/DanielSjoholm/trainlog/catalog"
	"github.com/DanielSjoholm/trainlog/internal/models"
	"github.com/DanielSjoholm/trainlog/internal/timeutil"
	"github.com/DanielSjoholm/trainlog/store"
)

const sessionSettled = "settled"

// Settled fulfills the os.Signal interface.
type Settled struct{}

func (s Settled) String() string {
	return sessionSettled
}

func (s Settled) Signal() {}

// State identifies where the engine is in the session lifecycle.
type State int

const (
	StateIdle State = iota
	StateActive
	StateSaving
	StateAbandoning
	StateRestorePending
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSaving:
		return "saving"
	case StateAbandoning:
		return "abandoning"
	case StateRestorePending:
		return "restore-pending"
	default:
		return "idle"
	}
}

// Field selects which half of a set entry an edit applies to.
type Field string

const (
	FieldWeight Field = "weight"
	FieldReps   Field = "reps"
)

const (
	exitMessage = "You have an active workout that hasn't been saved. " +
		"Are you sure you want to exit?"
	saveMessage = "Are you sure you want to save and finish this workout? " +
		"This cannot be undone."
	restoreMessage = "An unfinished %s workout (%s elapsed) was found. " +
		"Do you want to continue it?"
)

// DefaultStaleAfter is how old a checkpoint may be before it is silently
// discarded instead of being offered for restoration.
const DefaultStaleAfter = 24 * time.Hour

// Confirmer obtains a yes/no decision from the user. The engine blocks
// until the decision is returned; no other session mutation is accepted
// in the meantime.
type Confirmer interface {
	Confirm(message string) bool
}

// Hooks are the presentation callbacks invoked by the engine. Any of them
// may be nil.
type Hooks struct {
	// OnTick receives the formatted elapsed duration once per second
	// while a session is active.
	OnTick func(formatted string)
	// RenderWorkoutForm is invoked when a session opens or is restored.
	RenderWorkoutForm func(p catalog.Program)
	// RenderLastWorkout receives the previous workout for the opened
	// program, or nil when there is none.
	RenderLastWorkout func(w *models.Workout)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithStaleAfter overrides the checkpoint staleness window.
func WithStaleAfter(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.staleAfter = d
		}
	}
}

// Engine is the workout session state machine. At most one session is
// active at any time. All mutations are serialised through an internal
// mutex: the 1-second ticker and the user-driven actions never overlap,
// and a pending confirmation blocks every other mutation until it is
// resolved.
type Engine struct {
	mu        sync.Mutex
	db        store.DB
	catalog   *catalog.Catalog
	confirmer Confirmer
	hooks     Hooks
	now       func() time.Time

	staleAfter time.Duration

	state     State
	program   catalog.Program
	startTime time.Time
	elapsed   time.Duration
	draft     models.Draft
}

// New creates a session engine in the Idle state.
func New(
	db store.DB,
	cat *catalog.Catalog,
	confirmer Confirmer,
	hooks Hooks,
	opts ...Option,
) *Engine {
	e := &Engine{
		db:         db,
		catalog:    cat,
		confirmer:  confirmer,
		hooks:      hooks,
		now:        time.Now,
		staleAfter: DefaultStaleAfter,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Open starts a workout session for the given program. Each exercise
// begins with a single empty set. The previous workout for the program is
// passed to the render hooks and an initial checkpoint is written.
func (e *Engine) Open(programID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return errSessionActive
	}

	p, err := e.catalog.Get(programID)
	if err != nil {
		return err
	}

	e.program = p
	e.draft = freshDraft(p)
	e.startTime = e.now()
	e.elapsed = 0
	e.state = StateActive

	e.persistSession()
	e.render()

	return nil
}

// freshDraft initialises a draft with one empty set per exercise.
func freshDraft(p catalog.Program) models.Draft {
	draft := make(models.Draft, len(p.Exercises))

	for _, name := range p.Exercises {
		draft[catalog.ExerciseID(name)] = []models.SetEntry{{}}
	}

	return draft
}

// render invokes the presentation hooks for an opened or restored
// session. The caller must hold the mutex.
func (e *Engine) render() {
	if e.hooks.RenderLastWorkout != nil {
		last, err := e.db.MostRecentWorkout(e.program.ID)
		if err != nil {
			slog.Warn("unable to load previous workout", "error", err)
		}

		e.hooks.RenderLastWorkout(last)
	}

	if e.hooks.RenderWorkoutForm != nil {
		e.hooks.RenderWorkoutForm(e.program)
	}
}

// AddSet appends an empty set to the given exercise. It is a no-op when
// no session is active or the exercise id is unknown.
func (e *Engine) AddSet(exerciseID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sets, ok := e.activeSets(exerciseID)
	if !ok {
		return
	}

	e.draft[exerciseID] = append(sets, models.SetEntry{})

	e.persistSession()
}

// RemoveSet deletes the set at the given index for the given exercise.
// Invalid ids or indexes are ignored.
func (e *Engine) RemoveSet(exerciseID string, index int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sets, ok := e.activeSets(exerciseID)
	if !ok || index < 0 || index >= len(sets) {
		return
	}

	e.draft[exerciseID] = append(sets[:index], sets[index+1:]...)

	e.persistSession()
}

// EditSet updates one field of the set at the given index. Invalid ids,
// indexes, or fields are ignored.
func (e *Engine) EditSet(exerciseID string, index int, field Field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sets, ok := e.activeSets(exerciseID)
	if !ok || index < 0 || index >= len(sets) {
		return
	}

	switch field {
	case FieldWeight:
		sets[index].Weight = value
	case FieldReps:
		sets[index].Reps = value
	default:
		return
	}

	e.persistSession()
}

func (e *Engine) activeSets(exerciseID string) ([]models.SetEntry, bool) {
	if e.state != StateActive {
		return nil, false
	}

	sets, ok := e.draft[exerciseID]

	return sets, ok
}

// Tick recomputes the elapsed duration from the wall clock, notifies the
// display callback, and writes a checkpoint. It is a no-op when no
// session is active. The duration is always derived from now - startTime,
// never by summing tick intervals, so delayed or missed ticks cause no
// drift.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive {
		return
	}

	e.elapsed = e.now().Sub(e.startTime)

	if e.hooks.OnTick != nil {
		e.hooks.OnTick(timeutil.FormatDuration(e.elapsed))
	}

	e.persistCheckpoint()
}

// Elapsed returns the current elapsed duration for the session.
func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateActive {
		return e.now().Sub(e.startTime)
	}

	return e.elapsed
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Program returns the program of the current session.
func (e *Engine) Program() catalog.Program {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.program
}

// Sets returns a copy of the draft entries for the given exercise.
func (e *Engine) Sets(exerciseID string) []models.SetEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	sets := e.draft[exerciseID]
	result := make([]models.SetEntry, len(sets))
	copy(result, sets)

	return result
}

// RequestExit asks to leave the workout screen. With no active session it
// returns true immediately. Otherwise the user must confirm abandoning
// the session; declining leaves everything unchanged.
func (e *Engine) RequestExit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive {
		return true
	}

	if !e.confirmer.Confirm(exitMessage) {
		return false
	}

	e.state = StateAbandoning

	e.clearSession()
	e.reset()

	return true
}

// Save finishes the session after explicit confirmation and appends the
// built workout record to the store. It returns (nil, nil) when the user
// declines. A storage failure leaves the session active so the save can
// be retried.
func (e *Engine) Save() (*models.Workout, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive {
		return nil, errNoActiveSession
	}

	if !e.confirmer.Confirm(saveMessage) {
		return nil, nil
	}

	e.state = StateSaving

	now := e.now()
	e.elapsed = now.Sub(e.startTime)

	w := e.buildWorkout(now)

	err := e.db.AppendWorkout(w)
	if err != nil {
		e.state = StateActive

		return nil, fmt.Errorf("unable to save the workout: %w", err)
	}

	e.clearSession()
	e.reset()

	return w, nil
}

// buildWorkout assembles the workout record from the catalog order and
// the draft entries. Sets with both fields blank are dropped, a
// half-filled set has its missing field defaulted to "0", and exercises
// without retained sets are omitted. The caller must hold the mutex.
func (e *Engine) buildWorkout(now time.Time) *models.Workout {
	w := &models.Workout{
		ID:          uuid.NewString(),
		Program:     e.program.ID,
		ProgramName: e.program.Name,
		Date:        now,
		Duration:    e.elapsed.Milliseconds(),
	}

	for _, name := range e.program.Exercises {
		record := models.ExerciseRecord{Name: name}

		for _, set := range e.draft[catalog.ExerciseID(name)] {
			if set.Blank() {
				continue
			}

			if set.Weight == "" {
				set.Weight = "0"
			}

			if set.Reps == "" {
				set.Reps = "0"
			}

			record.Sets = append(record.Sets, set)
		}

		if len(record.Sets) > 0 {
			w.Exercises = append(w.Exercises, record)
		}
	}

	return w
}

// RecoverOnStartup offers a previously checkpointed session for
// restoration. A checkpoint older than the staleness window is discarded
// without involving the user. On acceptance the downtime since the last
// checkpoint counts toward the elapsed duration and the draft values are
// restored from the form cache.
func (e *Engine) RecoverOnStartup() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return false, errSessionActive
	}

	chk, err := e.db.Checkpoint()
	if err != nil {
		return false, err
	}

	if chk == nil {
		return false, nil
	}

	now := e.now()

	if now.Sub(chk.Timestamp) > e.staleAfter {
		e.clearSession()

		return false, nil
	}

	slog.Debug("restorable checkpoint found", "checkpoint", spew.Sdump(chk))

	p, err := e.catalog.Get(chk.Program)
	if err != nil {
		return false, err
	}

	e.state = StateRestorePending

	elapsed := time.Duration(chk.Duration)*time.Millisecond +
		now.Sub(chk.Timestamp)

	msg := fmt.Sprintf(
		restoreMessage,
		p.Name,
		timeutil.FormatDuration(elapsed),
	)

	if !e.confirmer.Confirm(msg) {
		e.state = StateIdle

		e.clearSession()

		return false, nil
	}

	e.program = p
	// shift the start time so that now - startTime covers both the
	// checkpointed duration and the downtime since the checkpoint
	e.startTime = chk.Timestamp.Add(-time.Duration(chk.Duration) * time.Millisecond)
	e.elapsed = now.Sub(e.startTime)

	draft, err := e.db.Draft()
	if err != nil {
		slog.Warn("unable to load draft form values", "error", err)
	}

	e.draft = mergeDraft(p, draft)
	e.state = StateActive

	e.persistSession()
	e.render()

	return true, nil
}

// mergeDraft restores cached form values, keeping only exercises that
// belong to the program and giving every other exercise one empty set.
func mergeDraft(p catalog.Program, cached models.Draft) models.Draft {
	draft := freshDraft(p)

	for _, name := range p.Exercises {
		id := catalog.ExerciseID(name)

		if sets, ok := cached[id]; ok && len(sets) > 0 {
			draft[id] = sets
		}
	}

	return draft
}

// HandleInterruption checkpoints the session state whenever the process
// is interrupted with Ctrl-C, so the workout can be restored on the next
// run.
func (e *Engine) HandleInterruption() chan os.Signal {
	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		s := <-c
		// a settled signal indicates that the session ended normally
		if s.String() == sessionSettled {
			return
		}

		e.mu.Lock()

		if e.state == StateActive {
			e.elapsed = e.now().Sub(e.startTime)
			e.persistSession()
		}

		e.mu.Unlock()

		_ = e.db.Close()

		os.Exit(0)
	}()

	return c
}

// reset returns the engine to Idle. The caller must hold the mutex.
func (e *Engine) reset() {
	e.state = StateIdle
	e.program = catalog.Program{}
	e.draft = nil
	e.startTime = time.Time{}
}

// clearSession removes the checkpoint and the draft form cache. The
// caller must hold the mutex.
func (e *Engine) clearSession() {
	err := e.db.ClearSession()
	if err != nil {
		slog.Warn("unable to clear session state", "error", err)
	}
}

// persistCheckpoint writes the session checkpoint. Write failures are
// surfaced as a warning and never interrupt the session; the in-memory
// state stays authoritative until the next successful write.
func (e *Engine) persistCheckpoint() {
	chk := &models.Checkpoint{
		Program:   e.program.ID,
		StartTime: e.startTime,
		Duration:  e.elapsed.Milliseconds(),
		Active:    e.state == StateActive,
		Timestamp: e.now(),
	}

	err := e.db.SaveCheckpoint(chk)
	if err != nil {
		slog.Warn("unable to save session checkpoint", "error", err)
		pterm.Warning.Printfln("unable to save session checkpoint: %v", err)
	}
}

// persistDraft writes the draft form cache, best-effort like
// persistCheckpoint.
func (e *Engine) persistDraft() {
	err := e.db.SaveDraft(e.draft)
	if err != nil {
		slog.Warn("unable to save draft form values", "error", err)
		pterm.Warning.Printfln("unable to save draft form values: %v", err)
	}
}

func (e *Engine) persistSession() {
	if e.state == StateActive {
		e.elapsed = e.now().Sub(e.startTime)
	}

	e.persistCheckpoint()
	e.persistDraft()
}
