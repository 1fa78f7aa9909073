package teststore

import (
	"context"
	"testing"

	"github.com/memoflow/noted/store/db"
	"github.com/memoflow/noted/test"
)

func NewTestingStore(ctx context.Context, t *testing.T) *db.NoteStore {
	profile := test.GetTestingProfile(t)
	sqliteDB := db.NewDB(profile)
	if err := sqliteDB.Open(ctx); err != nil {
		t.Fatalf("failed to open db, error: %+v", err)
	}
	t.Cleanup(func() {
		_ = sqliteDB.Close()
	})

	return db.NewNoteStore(sqliteDB)
}
