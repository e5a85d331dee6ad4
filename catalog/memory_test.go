package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func seedStore(n int) *MemoryStore {
	s := NewMemoryStore()
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("PROD-%03d", i+1)
		s.Put(Record{
			ID:         id,
			SourceLang: "en",
			Fields:     map[string]string{"name": "Item " + id},
		})
	}
	return s
}

func TestMemoryStore_GetByID(t *testing.T) {
	s := seedStore(3)
	ctx := context.Background()

	r, err := s.GetByID(ctx, "PROD-002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Fields["name"] != "Item PROD-002" {
		t.Errorf("unexpected record: %+v", r)
	}

	if _, err := s.GetByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_PutReplaces(t *testing.T) {
	s := seedStore(1)
	s.Put(Record{ID: "PROD-001", SourceLang: "en", Fields: map[string]string{"name": "Renamed"}})

	r, _ := s.GetByID(context.Background(), "PROD-001")
	if r.Fields["name"] != "Renamed" {
		t.Errorf("Put should replace, got %q", r.Fields["name"])
	}

	records, _, _ := s.ScanPage(context.Background(), "", 10)
	if len(records) != 1 {
		t.Errorf("replace should not duplicate the id, got %d records", len(records))
	}
}

func TestMemoryStore_ScanPage(t *testing.T) {
	s := seedStore(5)
	ctx := context.Background()

	records, nextID, err := s.ScanPage(ctx, "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].ID != "PROD-001" || records[1].ID != "PROD-002" {
		t.Fatalf("unexpected first page: %+v", records)
	}
	if nextID != "PROD-002" {
		t.Errorf("expected cursor PROD-002, got %q", nextID)
	}

	records, nextID, _ = s.ScanPage(ctx, nextID, 2)
	if len(records) != 2 || records[0].ID != "PROD-003" {
		t.Fatalf("unexpected second page: %+v", records)
	}

	records, nextID, _ = s.ScanPage(ctx, nextID, 2)
	if len(records) != 1 || records[0].ID != "PROD-005" {
		t.Fatalf("unexpected last page: %+v", records)
	}
	if nextID != "" {
		t.Errorf("exhausted scan should clear the cursor, got %q", nextID)
	}
}

func TestMemoryStore_ScanPageUnknownCursor(t *testing.T) {
	s := seedStore(3)

	// A cursor between ids resumes at the next larger id.
	records, _, err := s.ScanPage(context.Background(), "PROD-0015", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].ID != "PROD-002" {
		t.Errorf("expected scan to resume after the cursor, got %+v", records)
	}
}

func TestMemoryStore_ScanPageEmpty(t *testing.T) {
	s := NewMemoryStore()
	records, nextID, err := s.ScanPage(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 || nextID != "" {
		t.Errorf("empty store should return an empty page, got %+v next=%q", records, nextID)
	}
}
