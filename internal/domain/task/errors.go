package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPhase    = errors.New("invalid phase: must be plan/do/check/act")
	ErrInvalidPriority = errors.New("invalid priority: must be P0/P1/P2/P3")
	ErrInvalidResult   = errors.New("invalid result: must be success/fail/pivot")
	ErrUnknownAction   = errors.New("unknown action: must be create/update/list/check/close")
)
