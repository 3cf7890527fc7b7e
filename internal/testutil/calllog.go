// Package testutil provides test helpers for building call log fixtures.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/calllog/internal/model"
	"github.com/Veraticus/calllog/internal/storage"
)

// DefaultCalls is a small log with one resolved and two unresolved calls,
// stored out of number order.
func DefaultCalls() []model.Call {
	return []model.Call{
		model.NewCall(3, "555-0103", "router", "НЕТ"),
		model.NewCall(1, "555-0101", "billing", model.ResolvedYes),
		model.NewCall(2, "555-0102", "activation", model.ResolvedNo),
	}
}

// WriteCallLog saves calls as a call log named file inside dir and returns
// its path.
//
// Example:
//
//	path := testutil.WriteCallLog(t, t.TempDir(), "data.csv", testutil.DefaultCalls()...)
func WriteCallLog(t *testing.T, dir, file string, calls ...model.Call) string {
	t.Helper()

	path := filepath.Join(dir, file)
	log, err := storage.Open(path)
	if err != nil {
		t.Fatalf("failed to open call log fixture: %v", err)
	}
	for _, call := range calls {
		log.Append(call)
	}
	if err := log.Save(); err != nil {
		t.Fatalf("failed to save call log fixture: %v", err)
	}
	return path
}

// SetupArchive creates a migrated in-memory archive that is closed when the
// test ends.
func SetupArchive(t *testing.T) *storage.Archive {
	t.Helper()

	archive, err := storage.OpenArchive(":memory:")
	if err != nil {
		t.Fatalf("failed to create test archive: %v", err)
	}
	t.Cleanup(func() {
		_ = archive.Close()
	})

	if err := archive.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test archive: %v", err)
	}
	return archive
}
