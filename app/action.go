package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/DanielSjoholm/trainlog/catalog"
	"github.com/DanielSjoholm/trainlog/config"
	"github.com/DanielSjoholm/trainlog/internal/models"
	"github.com/DanielSjoholm/trainlog/internal/timeutil"
	"github.com/DanielSjoholm/trainlog/internal/ui"
	"github.com/DanielSjoholm/trainlog/stats"
	"github.com/DanielSjoholm/trainlog/store"
)

const (
	envNoColor         = "NO_COLOR"
	envTrainlogNoColor = "TRAINLOG_NO_COLOR"
)

var appConfig *config.Config

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func initLogging() {
	logger := slog.New(slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   config.LogFilePath(),
		MaxSize:    1,
		MaxBackups: 3,
	}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	slog.SetDefault(logger)
}

// buildCatalog assembles the program catalog from the built-in programs
// and the user-defined ones from the config file.
func buildCatalog(cfg *config.Config) *catalog.Catalog {
	cat := catalog.New()

	for _, spec := range cfg.Programs {
		err := cat.Add(catalog.Program{
			ID:        spec.ID,
			Name:      spec.Name,
			Exercises: spec.Exercises,
		})
		if err != nil {
			pterm.Warning.Printfln(
				"skipping program %q from config: %v",
				spec.ID,
				err,
			)
		}
	}

	return cat
}

func workoutHelper() ([]models.Workout, store.DB, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	workouts, err := db.Workouts()
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return workouts, db, nil
}

// notify displays a desktop notification if notifications are enabled.
func notify(title, msg string) {
	if !appConfig.Notify {
		return
	}

	err := beeep.Notify(title, msg, "")
	if err != nil {
		slog.Error("unable to display notification", slog.Any("error", err))
	}
}

// runSaveCmd executes the user-specified save_cmd hook after a workout
// is recorded.
func runSaveCmd(saveCmd string) error {
	if saveCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(saveCmd)
	if err != nil {
		return fmt.Errorf("unable to parse save_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// startAction handles the start command and begins a new workout session.
func startAction(ctx *cli.Context) error {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	u := newWorkoutUI(appConfig, db)

	return u.start(ctx.Args().First())
}

// defaultAction starts a workout session with an interactive program
// selection.
func defaultAction(ctx *cli.Context) error {
	if ctx.Args().Present() {
		return fmt.Errorf(
			"unknown command %q, run 'trainlog --help'",
			ctx.Args().First(),
		)
	}

	return startAction(ctx)
}

// resumeAction handles the resume command and recovers a previously
// interrupted workout session.
func resumeAction(_ *cli.Context) error {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	u := newWorkoutUI(appConfig, db)

	return u.resume()
}

// historyAction prints a table of the recorded workouts, newest first.
func historyAction(ctx *cli.Context) error {
	filters := config.Filter(ctx)

	workouts, db, err := workoutHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	workouts = stats.Filter(
		workouts,
		filters.Program,
		filters.StartTime,
		filters.EndTime,
	)

	if len(workouts) == 0 {
		pterm.Info.Println("No workouts found. Time to hit the gym!")
		return nil
	}

	stats.PrintHistory(os.Stdout, workouts, appConfig.WeightUnit)

	return nil
}

// progressAction charts the progression for a recorded exercise, or lists
// the recorded exercises when none is specified.
func progressAction(ctx *cli.Context) error {
	workouts, db, err := workoutHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	exercise := ctx.Args().First()

	if exercise == "" {
		names := stats.Exercises(workouts)
		if len(names) == 0 {
			pterm.Info.Println("No workouts found. Time to hit the gym!")
			return nil
		}

		pterm.Println(ui.Highlight("Recorded exercises:"))

		for _, name := range names {
			pterm.Printfln("  • %s", name)
		}

		return nil
	}

	p := stats.Compute(workouts, exercise)
	if p == nil {
		pterm.Info.Printfln("No data recorded for %q yet.", exercise)
		return nil
	}

	stats.Render(os.Stdout, p, appConfig.WeightUnit)

	return nil
}

// deleteAction deletes a workout identified by its position in the
// history list.
func deleteAction(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" {
		return errors.New("specify the workout number from 'trainlog history'")
	}

	position, err := strconv.Atoi(arg)
	if err != nil || position < 1 {
		return fmt.Errorf("invalid workout number: %q", arg)
	}

	workouts, db, err := workoutHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	sorted := stats.SortedByDateDesc(workouts)

	if position > len(sorted) {
		return fmt.Errorf(
			"workout %d does not exist, only %d workouts are recorded",
			position,
			len(sorted),
		)
	}

	target := sorted[position-1]

	prompt := fmt.Sprintf(
		"Delete the %s workout from %s? This cannot be undone.",
		target.ProgramName,
		target.Date.Format("Jan 02, 2006"),
	)

	if !(huhConfirmer{}).Confirm(prompt) {
		return nil
	}

	err = db.DeleteWorkout(target.ID)
	if err != nil {
		return err
	}

	pterm.Success.Println("Workout deleted!")

	return nil
}

// programsAction prints a table of the available workout programs.
func programsAction(_ *cli.Context) error {
	cat := buildCatalog(appConfig)

	data := [][]string{{"ID", "NAME", "EXERCISES"}}

	for _, p := range cat.All() {
		data = append(data, []string{
			p.ID,
			p.Name,
			strings.Join(p.Exercises, ", "),
		})
	}

	ui.PrintTable(data, os.Stdout)

	return nil
}

// statusAction reports the state of the current workout session. When
// another trainlog instance holds the database lock, the status file it
// maintains is consulted instead.
func statusAction(_ *cli.Context) error {
	dbFilePath := config.DBFilePath()
	statusFilePath := config.StatusFilePath()

	var fileMode fs.FileMode = 0o600

	handle, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// The lock was acquired, so no other instance is running
	if err == nil {
		_ = handle.Close()

		db, cerr := store.NewClient(dbFilePath)
		if cerr != nil {
			return cerr
		}

		defer db.Close()

		chk, cerr := db.Checkpoint()
		if cerr != nil {
			return cerr
		}

		if chk == nil {
			pterm.Println("No workout in progress.")
			return nil
		}

		pterm.Printfln(
			"An unfinished %s workout from %s is waiting, run 'trainlog resume' to continue.",
			chk.Program,
			chk.Timestamp.Format("Jan 02, 2006 03:04 PM"),
		)

		return nil
	}

	if !errors.Is(err, bolt.ErrDatabaseOpen) &&
		!errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	fileBytes, err := os.ReadFile(statusFilePath)
	if err != nil {
		// missing file should not return an error
		return nil
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return err
	}

	elapsed := time.Since(s.StartTime)
	if elapsed < 0 {
		return nil
	}

	pterm.Printfln(
		"[%s]: %s",
		s.ProgramName,
		timeutil.FormatDuration(elapsed),
	)

	return nil
}

// editConfigAction handles the edit-config command which opens the
// trainlog config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(_ *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TRAINLOG_NO_COLOR is set
	if _, exists := os.LookupEnv(envTrainlogNoColor); exists {
		disableStyling()
	}

	cfg, err := config.Init()
	if err != nil {
		return err
	}

	appConfig = cfg
	ui.DarkTheme = cfg.DarkTheme

	initLogging()

	return nil
}
