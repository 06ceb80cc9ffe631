// Package stats reports workout history and per-exercise progress.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/DanielSjoholm/trainlog/internal/models"
	"github.com/DanielSjoholm/trainlog/internal/timeutil"
	"github.com/DanielSjoholm/trainlog/internal/ui"
)

const barChartChar = "▇"

// Bar is one chart bar, representing a single workout in which the
// exercise appears.
type Bar struct {
	Date      time.Time
	MaxWeight float64
	// Percent is the bar height relative to the best weight across all
	// matching workouts, in the range 0-100.
	Percent float64
}

// Progress summarises an exercise across every workout that contains it.
type Progress struct {
	Exercise    string
	Workouts    int
	BestWeight  float64
	TotalVolume float64
	// Improvement is the best weight minus the best weight of the first
	// (oldest) matching workout.
	Improvement float64
	LastWorkout time.Time
	Bars        []Bar
}

// parseWeight reads a stored weight or reps value. Blank and malformed
// values count as zero.
func parseNumber(s string) float64 {
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}

// exerciseIn returns the record for the named exercise within a workout,
// or nil.
func exerciseIn(w *models.Workout, name string) *models.ExerciseRecord {
	for i := range w.Exercises {
		if w.Exercises[i].Name == name {
			return &w.Exercises[i]
		}
	}

	return nil
}

// Compute aggregates progress for one exercise. It returns nil when no
// workout contains the exercise.
func Compute(workouts []models.Workout, exercise string) *Progress {
	var matching []models.Workout

	for i := range workouts {
		if exerciseIn(&workouts[i], exercise) != nil {
			matching = append(matching, workouts[i])
		}
	}

	if len(matching) == 0 {
		return nil
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Date.Before(matching[j].Date)
	})

	p := &Progress{
		Exercise:    exercise,
		Workouts:    len(matching),
		LastWorkout: matching[len(matching)-1].Date,
	}

	maxWeights := make([]float64, len(matching))

	for i := range matching {
		record := exerciseIn(&matching[i], exercise)

		for _, set := range record.Sets {
			weight := parseNumber(set.Weight)
			reps := parseNumber(set.Reps)

			p.TotalVolume += weight * reps

			if weight > p.BestWeight {
				p.BestWeight = weight
			}

			if weight > maxWeights[i] {
				maxWeights[i] = weight
			}
		}
	}

	p.Improvement = p.BestWeight - maxWeights[0]

	for i := range matching {
		var percent float64
		// guard against a best weight of zero
		if p.BestWeight > 0 {
			percent = maxWeights[i] / p.BestWeight * 100
		}

		p.Bars = append(p.Bars, Bar{
			Date:      matching[i].Date,
			MaxWeight: maxWeights[i],
			Percent:   percent,
		})
	}

	return p
}

// Exercises returns the distinct exercise names across all workouts in
// natural sort order.
func Exercises(workouts []models.Workout) []string {
	seen := make(map[string]struct{})

	var names []string

	for i := range workouts {
		for _, ex := range workouts[i].Exercises {
			if _, ok := seen[ex.Name]; ok {
				continue
			}

			seen[ex.Name] = struct{}{}

			names = append(names, ex.Name)
		}
	}

	sort.Slice(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})

	return names
}

// Render writes the progress summary and a bar chart with one bar per
// matching workout, scaled to the best weight overall.
func Render(w io.Writer, p *Progress, unit string) {
	header := pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s progress", p.Exercise)

	summary := fmt.Sprintf(
		"Total workouts: %s\nBest weight: %s\nTotal volume: %s\nImprovement: %s\nLast workout: %s\n",
		ui.Green(p.Workouts),
		ui.Green(fmt.Sprintf("%g%s", p.BestWeight, unit)),
		ui.Green(fmt.Sprintf("%g", p.TotalVolume)),
		ui.Green(fmt.Sprintf("%+g%s", p.Improvement, unit)),
		ui.Green(p.LastWorkout.Format("Jan 02, 2006")),
	)

	var bars pterm.Bars

	for _, b := range p.Bars {
		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(b.Percent),
			Label: fmt.Sprintf(
				"%s (%g%s)",
				b.Date.Format("Jan 02, 2006"),
				b.MaxWeight,
				unit,
			),
		})
	}

	chart, err := pterm.DefaultBarChart.
		WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)

		chart = ""
	}

	note := "Weight progression over time, relative to the best weight (%)"

	fmt.Fprintln(w, strings.TrimSpace(header+summary+chart+"\n"+note))
}
