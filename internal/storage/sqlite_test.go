package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pet/internal/pet"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return store
}

func countRecords(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM pet_state").Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreFreshReadReturnsDefault(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	happiness, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if happiness != 100 {
		t.Errorf("fresh store should read 100, got %d", happiness)
	}
	if n := countRecords(t, store); n != 1 {
		t.Errorf("first read should create exactly one record, got %d", n)
	}
}

func TestStoreFreshReadUsesConfiguredDefault(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath, WithDefaultHappiness(80))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	happiness, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if happiness != 80 {
		t.Errorf("fresh store should read the configured 80, got %d", happiness)
	}
	if store.DefaultHappiness() != 80 {
		t.Errorf("DefaultHappiness() = %d, expected 80", store.DefaultHappiness())
	}

	// An existing record wins over the default
	if err := store.Write(ctx, 33); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if got, _ := store.Read(ctx); got != 33 {
		t.Errorf("stored value should survive reads, got %d", got)
	}
}

func TestStoreInitializeIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Initialize(ctx); err != nil {
			t.Fatalf("Initialize() call %d failed: %v", i+1, err)
		}
	}
	if _, err := store.Read(ctx); err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() after read failed: %v", err)
	}
	if _, err := store.Read(ctx); err != nil {
		t.Fatalf("second Read() failed: %v", err)
	}

	if n := countRecords(t, store); n != 1 {
		t.Errorf("expected exactly one record, got %d", n)
	}
}

func TestStoreWriteReadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, v := range []int{0, 42, 150, 170, -3} {
		if err := store.Write(ctx, v); err != nil {
			t.Fatalf("Write(%d) failed: %v", v, err)
		}
		got, err := store.Read(ctx)
		if err != nil {
			t.Fatalf("Read() failed: %v", err)
		}
		if got != v {
			t.Errorf("Read() after Write(%d) = %d", v, got)
		}
	}

	if n := countRecords(t, store); n != 1 {
		t.Errorf("writes should update in place, got %d records", n)
	}
}

func TestStoreWriteBeforeRead(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Write(ctx, 77); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if got != 77 {
		t.Errorf("Read() should not overwrite an existing record with the default, got %d", got)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pet.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if err := store.Write(ctx, 64); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	if err := reopened.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() after reopen failed: %v", err)
	}

	got, err := reopened.Read(ctx)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if got != 64 {
		t.Errorf("expected 64 after reopen, got %d", got)
	}
}

func TestStoreReadBeforeInitializeFails(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Read(context.Background()); err == nil {
		t.Error("Read() without schema should return an error")
	}
}

func TestStoreSnapshotUpdatedAt(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Write(ctx, 90); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	rec, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if rec.Happiness != 90 {
		t.Errorf("Snapshot happiness = %d, expected 90", rec.Happiness)
	}
	if rec.UpdatedAt.IsZero() {
		t.Error("Snapshot should carry the update time")
	}
}

func TestStoreRecordAndListActions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	records := []pet.ActionRecord{
		{Action: pet.ActionPet, Delta: 5, Happiness: 105, Treats: 5, At: base},
		{Action: pet.ActionGiveTreat, Delta: 20, Happiness: 125, Treats: 4, At: base.Add(time.Minute)},
		{Action: pet.ActionSwipe, Delta: -10, Happiness: 115, Treats: 4, At: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		if err := store.RecordAction(rec); err != nil {
			t.Fatalf("RecordAction() failed: %v", err)
		}
	}

	entries, err := store.RecentActions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentActions() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Newest first
	if entries[0].Action != pet.ActionSwipe || entries[0].Delta != -10 {
		t.Errorf("unexpected newest entry: %+v", entries[0])
	}
	if entries[2].Action != pet.ActionPet || entries[2].Happiness != 105 {
		t.Errorf("unexpected oldest entry: %+v", entries[2])
	}
	if !entries[1].CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("CreatedAt = %v, expected %v", entries[1].CreatedAt, base.Add(time.Minute))
	}

	limited, err := store.RecentActions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentActions() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(limited))
	}
}

func TestStoreClearActions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.RecordAction(pet.ActionRecord{Action: pet.ActionPet, Delta: 5, Happiness: 105, Treats: 5, At: time.Now()})
	if err := store.Write(ctx, 105); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if err := store.ClearActions(ctx); err != nil {
		t.Fatalf("ClearActions() failed: %v", err)
	}

	entries, _ := store.RecentActions(ctx, 10)
	if len(entries) != 0 {
		t.Errorf("expected empty journal after clear, got %d", len(entries))
	}

	// Pet state is untouched
	got, _ := store.Read(ctx)
	if got != 105 {
		t.Errorf("clearing the journal should keep happiness, got %d", got)
	}
}

func TestStoreBacksSession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cfg := pet.DefaultConfig()
	cfg.Journal = store
	cfg.DecayInterval = time.Hour
	s := pet.Open(ctx, store, cfg)

	s.Pet()
	s.GiveTreat()
	s.Close()

	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if got != 125 {
		t.Errorf("store should hold 125 after pet + treat, got %d", got)
	}

	entries, err := store.RecentActions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentActions() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 journaled actions, got %d", len(entries))
	}
}
