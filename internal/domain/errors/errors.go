package errors

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrNotificationDelivery = errors.New("notification delivery failed")
	ErrAlreadyExists        = errors.New("already exists")
	ErrUnknownAction        = errors.New("unknown action")
)
