package store

import (
	"sync"
	"testing"
	"time"

	"github.com/adlumen/budget-engine/internal/engine"
)

func TestRecordAssignsIDAndCreatedAt(t *testing.T) {
	s := NewMemoryStore()

	run := s.Record(Run{Focus: "demo", RowCount: 10})
	if run.ID == "" {
		t.Error("Record() did not assign an ID")
	}
	if run.CreatedAt.IsZero() {
		t.Error("Record() did not assign a creation time")
	}

	stored, ok := s.Get(run.ID)
	if !ok {
		t.Fatal("recorded run not retrievable")
	}
	if stored.Focus != "demo" || stored.RowCount != 10 {
		t.Errorf("stored run = %+v, expected focus demo with 10 rows", stored)
	}
}

func TestRecordKeepsExplicitID(t *testing.T) {
	s := NewMemoryStore()
	created := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)

	run := s.Record(Run{ID: "fixed-id", CreatedAt: created})
	if run.ID != "fixed-id" {
		t.Errorf("ID = %s, expected fixed-id", run.ID)
	}
	if !run.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, expected %v", run.CreatedAt, created)
	}
}

func TestGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Get("nope"); ok {
		t.Error("Get() returned ok for a missing run")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	first := s.Record(Run{Focus: "demo"})
	second := s.Record(Run{Focus: "enrollment"})
	third := s.Record(Run{Focus: "hybrid"})

	runs := s.List()
	if len(runs) != 3 {
		t.Fatalf("got %d runs, expected 3", len(runs))
	}
	if runs[0].ID != third.ID || runs[1].ID != second.ID || runs[2].ID != first.ID {
		t.Errorf("runs not ordered newest first: %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
}

func TestRecordOverwriteKeepsOrder(t *testing.T) {
	s := NewMemoryStore()
	run := s.Record(Run{ID: "same", Focus: "demo"})
	s.Record(Run{ID: "same", Focus: "enrollment"})

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1 after overwriting", s.Len())
	}
	stored, _ := s.Get(run.ID)
	if stored.Focus != "enrollment" {
		t.Errorf("Focus = %s, expected the overwritten value", stored.Focus)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	recs := []engine.Recommendation{{Campaign: "A", Action: engine.ActionHold}}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run := s.Record(Run{Recommendations: recs})
			if _, ok := s.Get(run.ID); !ok {
				t.Error("concurrent Get() missed a recorded run")
			}
			s.List()
		}()
	}
	wg.Wait()

	if s.Len() != 20 {
		t.Errorf("Len() = %d, expected 20", s.Len())
	}
}
