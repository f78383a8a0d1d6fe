package postgres

import (
	"context"
	"os"
	"testing"

	"foodwaste/internal/store"
	"foodwaste/internal/store/storetest"
)

func TestMigrateURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/db":   "pgx5://u:p@localhost:5432/db",
		"postgresql://u:p@localhost:5432/db": "pgx5://u:p@localhost:5432/db",
		"pgx5://already":                     "pgx5://already",
	}
	for in, want := range cases {
		if got := migrateURL(in); got != want {
			t.Errorf("migrateURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRepositoryContract(t *testing.T) {
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set, skipping postgres integration tests")
	}
	ctx := context.Background()
	repo, err := Open(ctx, url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	storetest.Run(t, func(t *testing.T) store.Repository {
		if err := repo.truncate(ctx); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return nopCloser{repo}
	})
}

// nopCloser shares one pool across subtests.
type nopCloser struct{ *Repository }

func (nopCloser) Close() error { return nil }
