package pg

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("pg: failed to parse connection config")
	ErrFailedToOpenDBConnection = errors.New("pg: failed to open database connection")
	ErrFailedToApplyMigrations  = errors.New("pg: failed to apply migrations")
	ErrMigrationsDirNotFound    = errors.New("pg: migrations directory not found")
)
