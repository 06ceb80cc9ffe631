package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/DanielSjoholm/trainlog/internal/models"
	"github.com/DanielSjoholm/trainlog/internal/timeutil"
	"github.com/DanielSjoholm/trainlog/internal/ui"
)

// SortedByDateDesc returns a copy of the workouts sorted newest first.
// The sort is stable, so records sharing a date keep their insertion
// order; positions in this view are what the delete command resolves to
// record ids.
func SortedByDateDesc(workouts []models.Workout) []models.Workout {
	sorted := make([]models.Workout, len(workouts))
	copy(sorted, workouts)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	return sorted
}

// Filter narrows workouts to a program and a time range. Empty program
// and zero times mean no constraint.
func Filter(
	workouts []models.Workout,
	programID string,
	start, end time.Time,
) []models.Workout {
	var result []models.Workout

	for i := range workouts {
		w := workouts[i]

		if programID != "" && w.Program != programID {
			continue
		}

		if !start.IsZero() && w.Date.Before(start) {
			continue
		}

		if !end.IsZero() && w.Date.After(end) {
			continue
		}

		result = append(result, w)
	}

	return result
}

func formatSets(sets []models.SetEntry, unit string) string {
	parts := make([]string, len(sets))

	for i, s := range sets {
		parts[i] = fmt.Sprintf("%s%s × %s", s.Weight, unit, s.Reps)
	}

	return strings.Join(parts, ", ")
}

func formatExercises(exercises []models.ExerciseRecord, unit string) string {
	parts := make([]string, len(exercises))

	for i, ex := range exercises {
		parts[i] = fmt.Sprintf("%s: %s", ex.Name, formatSets(ex.Sets, unit))
	}

	return strings.Join(parts, " · ")
}

// PrintHistory writes a table of workouts, newest first. The row numbers
// are the positions the delete command accepts.
func PrintHistory(w io.Writer, workouts []models.Workout, unit string) {
	sorted := SortedByDateDesc(workouts)

	tableBody := make([][]string, len(sorted))

	for i := range sorted {
		workout := sorted[i]

		duration := timeutil.FormatDuration(
			time.Duration(workout.Duration) * time.Millisecond,
		)

		row := []string{
			fmt.Sprintf("%d", i+1),
			workout.Date.Format("Jan 02, 2006 03:04 PM"),
			ui.Cyan(workout.ProgramName),
			duration,
			formatExercises(workout.Exercises, unit),
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "DATE", "PROGRAM", "DURATION", "EXERCISES"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}
