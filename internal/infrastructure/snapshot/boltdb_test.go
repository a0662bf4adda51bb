package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tasksure/client/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapshot.db"), "")
	if err != nil {
		t.Fatalf("Open() err=%v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	done := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Tasks: []domain.Task{{ID: "1", Title: "read", CompletedAt: &done}},
		Stats: domain.Stats{TotalPoints: 30, CurrentStreak: 3, LongestStreak: 7},
	}

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save() err=%v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if loaded == nil {
		t.Fatalf("Load()=nil, want snapshot")
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].ID != "1" {
		t.Fatalf("loaded.Tasks=%v, want the saved task", loaded.Tasks)
	}
	if loaded.Stats != snap.Stats {
		t.Fatalf("loaded.Stats=%+v, want %+v", loaded.Stats, snap.Stats)
	}
	if loaded.SavedAt.IsZero() {
		t.Fatalf("loaded.SavedAt is zero, want defaulted timestamp")
	}
}

func TestLoad_Empty(t *testing.T) {
	store := openTestStore(t)

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if loaded != nil {
		t.Fatalf("Load()=%+v on empty store, want nil", loaded)
	}
}

func TestSave_ReplacesPrevious(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save(Snapshot{Stats: domain.Stats{TotalPoints: 1}}); err != nil {
		t.Fatalf("Save() err=%v", err)
	}
	if err := store.Save(Snapshot{Stats: domain.Stats{TotalPoints: 2}}); err != nil {
		t.Fatalf("Save() err=%v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if loaded.Stats.TotalPoints != 2 {
		t.Fatalf("TotalPoints=%d, want 2", loaded.Stats.TotalPoints)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save(Snapshot{}); err != nil {
		t.Fatalf("Save() err=%v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() err=%v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if loaded != nil {
		t.Fatalf("Load()=%+v after Clear, want nil", loaded)
	}
}
