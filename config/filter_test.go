package config

import (
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/DanielSjoholm/trainlog/internal/timeutil"
)

func filterContext(t *testing.T, flags map[string]string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("history", flag.PanicOnError)

	for k := range flags {
		_ = f.String(k, "", "")
	}

	for k, v := range flags {
		err := f.Set(k, v)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestSetFilterConfig(t *testing.T) {
	cases := []struct {
		name  string
		flags map[string]string
		check func(t *testing.T, cfg *FilterConfig)
	}{
		{
			name:  "default is all time",
			flags: map[string]string{},
			check: func(t *testing.T, cfg *FilterConfig) {
				if !cfg.StartTime.IsZero() {
					t.Errorf(
						"Expected no start constraint, but got: %v",
						cfg.StartTime,
					)
				}
			},
		},
		{
			name:  "period of 7 days",
			flags: map[string]string{"period": "7days"},
			check: func(t *testing.T, cfg *FilterConfig) {
				want := timeutil.RoundToStart(
					time.Now().AddDate(0, 0, timeutil.Range[timeutil.Period7Days]),
				)

				if !cfg.StartTime.Equal(want) {
					t.Errorf(
						"Expected start to be: %v, but got: %v",
						want,
						cfg.StartTime,
					)
				}
			},
		},
		{
			name:  "program only",
			flags: map[string]string{"program": "legs"},
			check: func(t *testing.T, cfg *FilterConfig) {
				if cfg.Program != "legs" {
					t.Errorf(
						"Expected program to be: legs, but got: %s",
						cfg.Program,
					)
				}
			},
		},
		{
			name: "explicit dates win over the period",
			flags: map[string]string{
				"period": "7days",
				"start":  "2025-01-01",
				"end":    "2025-01-31",
			},
			check: func(t *testing.T, cfg *FilterConfig) {
				if cfg.StartTime.Year() != 2025 ||
					cfg.StartTime.Month() != time.January ||
					cfg.StartTime.Day() != 1 {
					t.Errorf(
						"Expected start to be Jan 1, 2025, but got: %v",
						cfg.StartTime,
					)
				}

				if cfg.EndTime.Day() != 31 {
					t.Errorf(
						"Expected end to be Jan 31, 2025, but got: %v",
						cfg.EndTime,
					)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := setFilterConfig(filterContext(t, tc.flags))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			tc.check(t, cfg)
		})
	}
}

func TestSetFilterConfigErrors(t *testing.T) {
	cases := []struct {
		name  string
		flags map[string]string
		want  error
	}{
		{
			name:  "unknown period",
			flags: map[string]string{"period": "fortnight"},
			want:  errInvalidPeriod,
		},
		{
			name: "inverted range",
			flags: map[string]string{
				"start": "2025-02-01",
				"end":   "2025-01-01",
			},
			want: errInvalidDateRange,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := setFilterConfig(filterContext(t, tc.flags))
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected error: %v, but got: %v", tc.want, err)
			}
		})
	}
}
