// Package main provides the entry point for the mdblog content server.
// It initializes and runs a web server using the Fiber framework that keeps
// a directory tree of Markdown articles and a SQLite metadata index in sync,
// and serves the public blog API plus the administrator content API.
// The application uses gorm for data persistence and stores site
// configuration (comments, analytics, object storage) alongside the content.
package main
