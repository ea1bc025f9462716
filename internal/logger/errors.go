package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not set.
	ErrAppNameIsEmpty = errors.New("toml config log.appName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not set.
	ErrServiceNameIsEmpty = errors.New("toml config log.serviceName can not be empty")
)

// ErrorHandler reports zerolog write failures on stderr.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "zerolog: could not write event: %v\n", err)
}
