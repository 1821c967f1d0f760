// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/nhle/fieldservice/internal/store"
)

// NewTestCatalog creates an in-memory catalog with all migrations applied
// and no rows. It is closed when the test completes.
func NewTestCatalog(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test catalog: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test catalog: %v", err)
		}
	})

	return s
}

// NewSeededCatalog is NewTestCatalog filled with the demo customers and
// engineers.
func NewSeededCatalog(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.OpenSeeded(context.Background())
	if err != nil {
		t.Fatalf("creating seeded catalog: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing seeded catalog: %v", err)
		}
	})

	return s
}
