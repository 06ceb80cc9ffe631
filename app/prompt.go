package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/DanielSjoholm/trainlog/catalog"
	"github.com/DanielSjoholm/trainlog/internal/models"
	"github.com/DanielSjoholm/trainlog/internal/timeutil"
	"github.com/DanielSjoholm/trainlog/internal/ui"
)

// huhConfirmer prompts for a yes/no decision on the terminal.
type huhConfirmer struct{}

func (huhConfirmer) Confirm(message string) bool {
	var confirmed bool

	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	)).Run()
	if err != nil {
		return false
	}

	return confirmed
}

// pick presents a selection menu and returns the chosen value.
func pick(title string, options []huh.Option[int]) (int, error) {
	var choice int

	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title(title).
			Options(options...).
			Value(&choice),
	)).Run()

	return choice, err
}

// pickProgram asks the user to choose one of the available programs.
func pickProgram(programs []catalog.Program) (string, error) {
	options := make([]huh.Option[string], len(programs))
	for i, p := range programs {
		options[i] = huh.NewOption(p.Name, p.ID)
	}

	var id string

	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which program are you training today?").
			Options(options...).
			Value(&id),
	)).Run()

	return id, err
}

func validWeight(s string) error {
	if s == "" {
		return nil
	}

	_, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%q is not a valid weight", s)
	}

	return nil
}

func validReps(s string) error {
	if s == "" {
		return nil
	}

	_, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("%q is not a valid rep count", s)
	}

	return nil
}

// promptSet asks for the weight and reps of a single set, pre-filled with
// the current values. Either field may be left blank.
func promptSet(
	exercise string,
	setNo int,
	weight, reps, unit string,
) (string, string, error) {
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("%s, set %d: weight (%s)", exercise, setNo, unit)).
			Placeholder("0").
			Validate(validWeight).
			Value(&weight),
		huh.NewInput().
			Title(fmt.Sprintf("%s, set %d: reps", exercise, setNo)).
			Placeholder("0").
			Validate(validReps).
			Value(&reps),
	)).Run()

	return weight, reps, err
}

func formatSet(set models.SetEntry, unit string) string {
	weight := set.Weight
	if weight == "" {
		weight = "—"
	} else {
		weight += unit
	}

	reps := set.Reps
	if reps == "" {
		reps = "—"
	}

	return fmt.Sprintf("%s × %s", weight, reps)
}

// renderWorkoutForm prints the header for a freshly opened session.
func renderWorkoutForm(p catalog.Program) {
	pterm.Println()
	pterm.Println(ui.Green(fmt.Sprintf("— %s —", p.Name)))
	pterm.Println(strings.Join(p.Exercises, " · "))
	pterm.Println()
}

// renderLastWorkout prints a summary of the previous workout for the
// opened program so the user knows what to beat.
func renderLastWorkout(w *models.Workout, unit string) {
	if w == nil {
		pterm.Info.Println("No previous workout for this program. Set the bar!")
		return
	}

	pterm.Println(ui.Highlight(fmt.Sprintf(
		"Last time (%s, %s):",
		w.Date.Format("Jan 02, 2006"),
		timeutil.FormatDuration(time.Duration(w.Duration)*time.Millisecond),
	)))

	for _, ex := range w.Exercises {
		sets := make([]string, len(ex.Sets))
		for i, set := range ex.Sets {
			sets[i] = formatSet(set, unit)
		}

		pterm.Printfln("  %s: %s", ui.Cyan(ex.Name), strings.Join(sets, ", "))
	}

	pterm.Println()
}
