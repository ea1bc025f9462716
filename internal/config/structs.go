package config

import (
	"time"

	"github.com/chao-eng/mdblog/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Content   Content
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Content holds the filesystem article tree settings.
type Content struct {
	BasePath string // base directory containing one subdirectory per article slug
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool    // use clean path middleware to allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}
