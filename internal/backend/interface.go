package backend

import (
	"context"

	"foodwaste/internal/services"
	"foodwaste/internal/store"
)

// CleanupFunc releases what a backend opened.
type CleanupFunc func() error

// Result is an opened record store plus the optional change-event publisher
// that goes with it.
type Result struct {
	Repository store.Repository
	// Publisher is nil when AMQP is not configured or unreachable.
	Publisher services.EventPublisher
	Cleanup   CleanupFunc
}

// Service wraps the result in an EntryService. Closing the service releases
// both the store and the publisher, so Cleanup need not be called as well.
func (r *Result) Service() *services.EntryService {
	return services.NewEntryService(r.Repository, r.Publisher)
}

// Factory opens backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	DatabaseURL string

	// Change events; an empty URL disables publishing.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	default:
		return false
	}
}
