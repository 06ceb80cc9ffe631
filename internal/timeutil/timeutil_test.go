package timeutil

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0min 0sec"},
		{59 * time.Second, "0min 59sec"},
		{time.Minute, "1min 0sec"},
		{4*time.Minute + 32*time.Second, "4min 32sec"},
		{61 * time.Minute, "61min 0sec"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf(
				"Expected %v to format as: %s, but got: %s",
				tc.in,
				tc.want,
				got,
			)
		}
	}
}

func TestSecsToMinsAndSecs(t *testing.T) {
	cases := []struct {
		secs     float64
		mins     int
		remander int
	}{
		{0, 0, 0},
		{59.9, 0, 59},
		{60, 1, 0},
		{272, 4, 32},
	}

	for _, tc := range cases {
		mins, secs := SecsToMinsAndSecs(tc.secs)
		if mins != tc.mins || secs != tc.remander {
			t.Errorf(
				"Expected %.1f to be: %dmin %dsec, but got: %dmin %dsec",
				tc.secs,
				tc.mins,
				tc.remander,
				mins,
				secs,
			)
		}
	}
}

func TestRoundToStartAndEnd(t *testing.T) {
	in := time.Date(2025, 3, 10, 17, 45, 12, 0, time.UTC)

	start := RoundToStart(in)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("Expected the start of the day, but got: %v", start)
	}

	end := RoundToEnd(in)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("Expected the end of the day, but got: %v", end)
	}

	if start.Day() != in.Day() || end.Day() != in.Day() {
		t.Error("Expected the day to be unchanged")
	}
}
