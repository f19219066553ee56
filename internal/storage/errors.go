package storage

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrFailedToEnsureUser = errors.New("failed to ensure user record")
	ErrFailedToSetPlan    = errors.New("failed to update user plan")
	ErrFailedToSaveShoot  = errors.New("failed to save shoot")
	ErrFailedToListShoots = errors.New("failed to list shoots")
)
