package usage

import "errors"

var (
	ErrFailedToReadUsage    = errors.New("failed to read current usage")
	ErrFailedToRecordAction = errors.New("failed to record usage action")
)
