package storage

import "context"

// The persisted state is five independent records keyed by name, each
// holding the full JSON-serialized collection. Every mutating store
// operation rewrites its whole collection. Prior deployments persisted
// the same layout, so any driver must return whatever bytes it finds
// and let the repository parse defensively.

// Collection keys.
const (
	KeyBooks         = "books"
	KeyAuthors       = "authors"
	KeyLoans         = "loans"
	KeyNotifications = "notifications"
	KeyUsers         = "users"
)

// Store is the persistence boundary. Load returns (nil, nil) when the
// key has never been written.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Closer is implemented by drivers holding connections.
type Closer interface {
	Close() error
}
