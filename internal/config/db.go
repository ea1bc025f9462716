package config

// DB holds the embedded database configuration settings.
type DB struct {
	// Path is the SQLite database file. A single connection is shared by
	// all requests; the engine serializes writers internally.
	Path string
	// Extras are appended to the DSN verbatim (pragma parameters).
	Extras string
}
