package common

import "errors"

var (
	// ErrorBusy is returned when an action is submitted while another one
	// is still in flight.
	ErrorBusy = errors.New("another action is in progress")
)
