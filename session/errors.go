package session

import "errors"

var (
	errSessionActive = errors.New(
		"a workout session is already in progress",
	)

	errNoActiveSession = errors.New(
		"no active workout session",
	)
)
