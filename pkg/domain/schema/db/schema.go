package db

import "context"

// SchemaInterface represents the database schema of the application.
type SchemaInterface interface {
	// Upgrade applies every schema version newer than the one in database.
	Upgrade(ctx context.Context) error

	// Version returns the schema version currently in database.
	//
	// Zero means no schema has been applied yet.
	Version(ctx context.Context) (int, error)

	// Context derives a context which is cancelled when the schema in
	// database falls behind the schema repository on disk.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
