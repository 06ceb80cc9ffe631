package catalog

import (
	"errors"
	"testing"
)

func TestExerciseID(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Bench Press", "Bench-Press"},
		{"Squats", "Squats"},
		{"Overhead Triceps Ext", "Overhead-Triceps-Ext"},
	}

	for _, tc := range cases {
		if got := ExerciseID(tc.name); got != tc.want {
			t.Errorf("Expected id to be: %s, but got: %s", tc.want, got)
		}
	}
}

func TestBuiltinPrograms(t *testing.T) {
	c := New()

	p, err := c.Get("legs")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if p.Name != "Legs" {
		t.Errorf("Expected name to be: Legs, but got: %s", p.Name)
	}

	if len(c.All()) != 5 {
		t.Errorf("Expected 5 built-in programs, but got: %d", len(c.All()))
	}

	_, err = c.Get("cardio")
	if !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("Expected ErrProgramNotFound, but got: %v", err)
	}
}

func TestAdd(t *testing.T) {
	cases := []struct {
		name    string
		program Program
		wantErr bool
	}{
		{
			name: "valid program",
			program: Program{
				ID:        "upper",
				Name:      "Upper Body",
				Exercises: []string{"Bench Press", "Rows"},
			},
		},
		{
			name: "duplicate id",
			program: Program{
				ID:        "legs",
				Name:      "Leg Day",
				Exercises: []string{"Squats"},
			},
			wantErr: true,
		},
		{
			name: "duplicate exercise",
			program: Program{
				ID:        "push",
				Name:      "Push",
				Exercises: []string{"Bench Press", "Bench Press"},
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()

			err := c.Add(tc.program)
			if (err != nil) != tc.wantErr {
				t.Errorf("Expected error: %t, but got: %v", tc.wantErr, err)
			}

			if !tc.wantErr {
				last := c.All()[len(c.All())-1]
				if last.ID != tc.program.ID {
					t.Errorf(
						"Expected the added program to be last, but got: %s",
						last.ID,
					)
				}
			}
		})
	}
}
