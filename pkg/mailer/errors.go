package mailer

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid mailer configuration")
	ErrInvalidMessage = errors.New("invalid email message")
	ErrFailedToSend   = errors.New("failed to send email")
	ErrFailedToRender = errors.New("failed to render email body")
)
