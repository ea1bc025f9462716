package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyBasePath error if config content.basePath is empty.
	ErrEmptyBasePath = errors.New("toml config content.basePath can not be empty")

	// ErrEmptyDBPath error if config db.path is empty.
	ErrEmptyDBPath = errors.New("toml config db.path can not be empty")
)
