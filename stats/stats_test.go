package stats

import (
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/DanielSjoholm/trainlog/internal/models"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 18, 0, 0, 0, time.UTC)
}

func legsWorkout(id string, date time.Time, squatWeights ...string) models.Workout {
	sets := make([]models.SetEntry, len(squatWeights))
	for i, w := range squatWeights {
		sets[i] = models.SetEntry{Weight: w, Reps: "5"}
	}

	return models.Workout{
		ID:          id,
		Program:     "legs",
		ProgramName: "Legs",
		Date:        date,
		Exercises: []models.ExerciseRecord{
			{Name: "Squats", Sets: sets},
		},
	}
}

func TestCompute(t *testing.T) {
	workouts := []models.Workout{
		// stored out of order on purpose
		legsWorkout("b", day(8), "90", "85"),
		legsWorkout("a", day(1), "80"),
		legsWorkout("c", day(15), "85"),
	}

	p := Compute(workouts, "Squats")
	if p == nil {
		t.Fatal("Expected progress data")
	}

	if p.Workouts != 3 {
		t.Errorf("Expected workouts to be: 3, but got: %d", p.Workouts)
	}

	if p.BestWeight != 90 {
		t.Errorf("Expected best weight to be: 90, but got: %g", p.BestWeight)
	}

	if p.Improvement != 10 {
		t.Errorf("Expected improvement to be: 10, but got: %g", p.Improvement)
	}

	wantVolume := float64(80*5 + 90*5 + 85*5 + 85*5)
	if p.TotalVolume != wantVolume {
		t.Errorf(
			"Expected total volume to be: %g, but got: %g",
			wantVolume,
			p.TotalVolume,
		)
	}

	if !p.LastWorkout.Equal(day(15)) {
		t.Errorf(
			"Expected last workout to be: %v, but got: %v",
			day(15),
			p.LastWorkout,
		)
	}

	wantBars := []Bar{
		{Date: day(1), MaxWeight: 80, Percent: 80.0 / 90 * 100},
		{Date: day(8), MaxWeight: 90, Percent: 100},
		{Date: day(15), MaxWeight: 85, Percent: 85.0 / 90 * 100},
	}

	if diff := cmp.Diff(wantBars, p.Bars); diff != "" {
		t.Errorf("Bars mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeNoData(t *testing.T) {
	workouts := []models.Workout{legsWorkout("a", day(1), "80")}

	if p := Compute(workouts, "Bench Press"); p != nil {
		t.Errorf("Expected no progress data, but got: %+v", p)
	}

	if p := Compute(nil, "Squats"); p != nil {
		t.Errorf("Expected no progress data, but got: %+v", p)
	}
}

func TestComputeMalformedValues(t *testing.T) {
	workouts := []models.Workout{
		legsWorkout("a", day(1), "", "abc", "60"),
	}

	p := Compute(workouts, "Squats")
	if p == nil {
		t.Fatal("Expected progress data")
	}

	// blank and malformed weights count as zero
	if p.BestWeight != 60 {
		t.Errorf("Expected best weight to be: 60, but got: %g", p.BestWeight)
	}

	if p.TotalVolume != 300 {
		t.Errorf("Expected total volume to be: 300, but got: %g", p.TotalVolume)
	}
}

func TestExercisesNaturalOrder(t *testing.T) {
	workouts := []models.Workout{
		{
			Date: day(1),
			Exercises: []models.ExerciseRecord{
				{Name: "Machine Row 10"},
				{Name: "Machine Row 2"},
				{Name: "Bench Press"},
			},
		},
		{
			Date: day(2),
			Exercises: []models.ExerciseRecord{
				{Name: "Bench Press"},
				{Name: "Squats"},
			},
		},
	}

	got := Exercises(workouts)

	want := []string{"Bench Press", "Machine Row 2", "Machine Row 10", "Squats"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected exercises to be: %v, but got: %v", want, got)
	}
}
