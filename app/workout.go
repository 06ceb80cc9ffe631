package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/DanielSjoholm/trainlog/catalog"
	"github.com/DanielSjoholm/trainlog/config"
	"github.com/DanielSjoholm/trainlog/internal/models"
	"github.com/DanielSjoholm/trainlog/internal/timeutil"
	"github.com/DanielSjoholm/trainlog/internal/ui"
	"github.com/DanielSjoholm/trainlog/session"
	"github.com/DanielSjoholm/trainlog/store"
	"github.com/DanielSjoholm/trainlog/timer"
)

var motivationalQuotes = []string{
	"Push yourself, because no one else is going to do it for you!",
	"The pain you feel today will be the strength you feel tomorrow.",
	"Success starts with self-discipline.",
	"Don't limit your challenges. Challenge your limits!",
	"Strength does not come from the physical capacity. It comes from an indomitable will.",
	"The only bad workout is the one that didn't happen.",
	"Make yourself proud.",
	"Your body can stand almost anything. It's your mind you have to convince.",
}

// Status is the record written to the status file once per second while
// a workout session is running. Other trainlog processes read it to
// report progress while this one holds the database lock.
type Status struct {
	Program     string    `json:"program"`
	ProgramName string    `json:"program_name"`
	StartTime   time.Time `json:"start_time"`
	Elapsed     string    `json:"elapsed"`
	Timestamp   time.Time `json:"timestamp"`
}

// statusWriter maintains the status file for a running session. Its
// fields are set before the ticker starts and are read-only afterwards.
type statusWriter struct {
	program   catalog.Program
	startTime time.Time
}

func (s *statusWriter) write(formatted string) {
	st := Status{
		Program:     s.program.ID,
		ProgramName: s.program.Name,
		StartTime:   s.startTime,
		Elapsed:     formatted,
		Timestamp:   time.Now(),
	}

	_ = writeStatusFile(&st)
}

func writeStatusFile(s *Status) error {
	statusFile, err := os.Create(config.StatusFilePath())
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

func removeStatusFile() {
	_ = os.Remove(config.StatusFilePath())
}

func showRandomQuote() {
	quote := motivationalQuotes[rand.Intn(len(motivationalQuotes))]

	pterm.Println(ui.Magenta(fmt.Sprintf("“%s”", quote)))
	pterm.Println()
}

// workoutUI drives an interactive workout session on the terminal.
type workoutUI struct {
	cfg    *config.Config
	db     *store.Client
	cat    *catalog.Catalog
	engine *session.Engine
	status *statusWriter
}

func newWorkoutUI(cfg *config.Config, db *store.Client) *workoutUI {
	u := &workoutUI{
		cfg:    cfg,
		db:     db,
		cat:    buildCatalog(cfg),
		status: &statusWriter{},
	}

	hooks := session.Hooks{
		OnTick:            u.status.write,
		RenderWorkoutForm: renderWorkoutForm,
		RenderLastWorkout: func(w *models.Workout) {
			renderLastWorkout(w, cfg.WeightUnit)
		},
	}

	u.engine = session.New(
		db,
		u.cat,
		huhConfirmer{},
		hooks,
		session.WithStaleAfter(cfg.CheckpointMaxAge),
	)

	return u
}

// start opens a session for the given program, prompting for one when no
// program is specified, and runs the workout loop until the session is
// saved or abandoned.
func (u *workoutUI) start(programID string) error {
	defer u.db.Close()

	if programID == "" {
		id, err := pickProgram(u.cat.All())
		if err != nil {
			return err
		}

		programID = id
	}

	showRandomQuote()

	err := u.engine.Open(programID)
	if err != nil {
		return err
	}

	return u.run()
}

// resume offers a checkpointed session for restoration and, when the
// user accepts, continues the workout loop where it left off.
func (u *workoutUI) resume() error {
	defer u.db.Close()

	restored, err := u.engine.RecoverOnStartup()
	if err != nil {
		return err
	}

	if !restored {
		pterm.Info.Println("No unfinished workout to resume.")
		return nil
	}

	return u.run()
}

// run is the interactive session loop. The ticker keeps the checkpoint
// and the status file current while the user records sets.
func (u *workoutUI) run() error {
	u.status.program = u.engine.Program()
	u.status.startTime = time.Now().Add(-u.engine.Elapsed())

	tmr := timer.New(time.Second, u.engine.Tick)
	tmr.Start()

	sigCh := u.engine.HandleInterruption()

	settle := func() {
		tmr.Stop()
		sigCh <- session.Settled{}
		removeStatusFile()
	}

	const (
		choiceSave = -1
		choiceExit = -2
	)

	program := u.engine.Program()

	for {
		options := make([]huh.Option[int], 0, len(program.Exercises)+2)
		for i, name := range program.Exercises {
			options = append(options, huh.NewOption(name, i))
		}

		options = append(
			options,
			huh.NewOption("Finish and save workout", choiceSave),
			huh.NewOption("Exit without saving", choiceExit),
		)

		title := fmt.Sprintf(
			"%s  [%s]",
			program.Name,
			timeutil.FormatDuration(u.engine.Elapsed()),
		)

		choice, err := pick(title, options)
		if err != nil {
			// The prompt was aborted, treat it as an exit request
			choice = choiceExit
		}

		switch choice {
		case choiceSave:
			w, err := u.engine.Save()
			if err != nil {
				pterm.Error.Println(err)
				continue
			}

			if w == nil {
				continue
			}

			settle()

			pterm.Success.Printfln(
				"Workout saved! %s in %s.",
				w.ProgramName,
				timeutil.FormatDuration(time.Duration(w.Duration)*time.Millisecond),
			)

			notify(
				"Workout saved",
				fmt.Sprintf("%s recorded, well done!", w.ProgramName),
			)

			err = runSaveCmd(u.cfg.SaveCmd)
			if err != nil {
				pterm.Error.Println(err)
			}

			return nil
		case choiceExit:
			if !u.engine.RequestExit() {
				continue
			}

			settle()

			return nil
		default:
			u.editExercise(program.Exercises[choice])
		}
	}
}

// editExercise is the per-exercise menu for editing, adding, and
// removing sets.
func (u *workoutUI) editExercise(name string) {
	exerciseID := catalog.ExerciseID(name)

	const (
		choiceAdd    = -1
		choiceRemove = -2
		choiceBack   = -3
	)

	for {
		sets := u.engine.Sets(exerciseID)

		options := make([]huh.Option[int], 0, len(sets)+3)
		for i, set := range sets {
			options = append(options, huh.NewOption(
				fmt.Sprintf("Set %d: %s", i+1, formatSet(set, u.cfg.WeightUnit)),
				i,
			))
		}

		options = append(
			options,
			huh.NewOption("Add a set", choiceAdd),
			huh.NewOption("Remove the last set", choiceRemove),
			huh.NewOption("Back", choiceBack),
		)

		choice, err := pick(name, options)
		if err != nil {
			return
		}

		switch choice {
		case choiceAdd:
			u.engine.AddSet(exerciseID)
		case choiceRemove:
			u.engine.RemoveSet(exerciseID, len(sets)-1)
		case choiceBack:
			return
		default:
			set := sets[choice]

			weight, reps, err := promptSet(
				name,
				choice+1,
				set.Weight,
				set.Reps,
				u.cfg.WeightUnit,
			)
			if err != nil {
				continue
			}

			u.engine.EditSet(exerciseID, choice, session.FieldWeight, weight)
			u.engine.EditSet(exerciseID, choice, session.FieldReps, reps)
		}
	}
}
