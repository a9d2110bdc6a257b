package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/record"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir(), logr.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newRecord(t *testing.T, start time.Time, moves ...string) *record.Record {
	t.Helper()
	rec := record.New(nil)
	rec.Info.StartTime = start
	for _, s := range moves {
		m, err := board.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		rec.Append(m, time.Second)
	}
	return rec
}

func TestStorage(t *testing.T) {
	s := openTest(t)
	day := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("SaveLoad", func(t *testing.T) {
		rec := newRecord(t, day, "7g7f", "3c3d")
		rec.Info.BlackName = "sente"
		id, err := s.SaveRecord(rec)
		if err != nil {
			t.Fatalf("SaveRecord: %v", err)
		}
		if id == "" || rec.ID != id {
			t.Fatalf("ID not assigned: %q / %q", id, rec.ID)
		}

		got, err := s.LoadRecord(id)
		if err != nil {
			t.Fatalf("LoadRecord: %v", err)
		}
		if got.Info.BlackName != "sente" || len(got.Moves) != 2 || got.Moves[1] != rec.Moves[1] {
			t.Errorf("loaded %+v, want %+v", got, rec)
		}
		if !got.Info.StartTime.Equal(day) {
			t.Errorf("start time = %v", got.Info.StartTime)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		rec := newRecord(t, day, "2g2f")
		rec.ID = "fixed"
		if _, err := s.SaveRecord(rec); err != nil {
			t.Fatal(err)
		}
		m, _ := board.ParseMove("8c8d")
		rec.Append(m, -1)
		if _, err := s.SaveRecord(rec); err != nil {
			t.Fatal(err)
		}
		got, err := s.LoadRecord("fixed")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Moves) != 2 {
			t.Errorf("got %d moves, want 2", len(got.Moves))
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := s.LoadRecord("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("LoadRecord error = %v, want ErrNotFound", err)
		}
		if err := s.DeleteRecord("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("DeleteRecord error = %v, want ErrNotFound", err)
		}
	})
}

func TestListAndDelete(t *testing.T) {
	s := openTest(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	late := newRecord(t, base.Add(time.Hour), "7g7f")
	early := newRecord(t, base, "2g2f")
	for _, rec := range []*record.Record{late, early} {
		if _, err := s.SaveRecord(rec); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.ListRecords()
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(list) != 2 || list[0].ID != early.ID || list[1].ID != late.ID {
		t.Fatalf("unexpected order: %v", list)
	}

	if err := s.DeleteRecord(early.ID); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	list, err = s.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != late.ID {
		t.Errorf("after delete: %v", list)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())
	t.Setenv(envDataDir, "")

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("Database directory missing: %v", err)
	}
}

func TestDataDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom")
	t.Setenv(envDataDir, dir)

	got, err := GetDataDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("GetDataDir = %q, want %q", got, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("override directory not created: %v", err)
	}
}
