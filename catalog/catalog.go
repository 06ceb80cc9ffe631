// Package catalog defines the training programs that workouts are logged
// against.
package catalog

import (
	"fmt"
	"strings"
)

var (
	ErrProgramNotFound = fmt.Errorf("program not found in the catalog")

	errDuplicateProgram = fmt.Errorf("a program with this id already exists")

	errDuplicateExercise = fmt.Errorf(
		"exercise names must be unique within a program",
	)
)

// Program is a named, ordered list of exercises. Programs are immutable
// once the catalog is assembled at startup.
type Program struct {
	ID        string
	Name      string
	Exercises []string
}

// ExerciseID derives the identifier used to key draft entries for an
// exercise. Spaces are replaced with dashes.
func ExerciseID(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}

// Catalog holds all known programs in their declared order.
type Catalog struct {
	programs map[string]Program
	order    []string
}

// builtin mirrors the default training programs that ship with the app.
var builtin = []Program{
	{
		ID:   "chest-triceps",
		Name: "Chest & Triceps",
		Exercises: []string{
			"Bench Press",
			"Incline Dumbbell Press",
			"Chest Flyes",
			"Triceps Pushdown",
			"Overhead Triceps Ext",
		},
	},
	{
		ID:   "shoulder-biceps",
		Name: "Shoulder & Biceps",
		Exercises: []string{
			"Shoulder Press",
			"Lateral Raise",
			"Reverse Flies",
			"Curl Cable Front",
			"Curl Cable Back",
			"Hammer Curl",
		},
	},
	{
		ID:   "back",
		Name: "PullPass",
		Exercises: []string{
			"Chins",
			"Bred Maskin Rodd",
			"Lat Pull Down",
			"En Arm Lats Drag",
		},
	},
	{
		ID:   "legs",
		Name: "Legs",
		Exercises: []string{
			"Squats",
			"Deadlifts",
			"Hipthrusters",
		},
	},
	{
		ID:   "abs",
		Name: "Abs",
		Exercises: []string{
			"Rope Curls",
		},
	},
}

// New returns a catalog populated with the built-in programs.
func New() *Catalog {
	c := &Catalog{
		programs: make(map[string]Program),
	}

	for _, p := range builtin {
		// the built-in set is known to be valid
		_ = c.Add(p)
	}

	return c
}

// Add registers an additional program, typically one defined in the
// config file. Program ids and the exercise names within a program must
// be unique.
func (c *Catalog) Add(p Program) error {
	if _, ok := c.programs[p.ID]; ok {
		return fmt.Errorf("%q: %w", p.ID, errDuplicateProgram)
	}

	seen := make(map[string]struct{}, len(p.Exercises))

	for _, name := range p.Exercises {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%q: %w", name, errDuplicateExercise)
		}

		seen[name] = struct{}{}
	}

	c.programs[p.ID] = p
	c.order = append(c.order, p.ID)

	return nil
}

// Get retrieves a program by its id.
func (c *Catalog) Get(id string) (Program, error) {
	p, ok := c.programs[id]
	if !ok {
		return Program{}, fmt.Errorf("%q: %w", id, ErrProgramNotFound)
	}

	return p, nil
}

// All returns every program in declared order.
func (c *Catalog) All() []Program {
	result := make([]Program, 0, len(c.order))

	for _, id := range c.order {
		result = append(result, c.programs[id])
	}

	return result
}
