package app

import (
	"github.com/urfave/cli/v2"
)

var (
	programFlag = &cli.StringFlag{
		Name:    "program",
		Aliases: []string{"p"},
		Usage:   "Only include workouts for the specified program `ID`",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"P"},
		Usage: "Only include workouts within the specified time `PERIOD`: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days, all-time",
		Value:   "all-time",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Only include workouts after the specified `DATE`",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "Only include workouts before the specified `DATE`",
	}
)
