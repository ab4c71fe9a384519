package web

import (
	"testing"
	"time"

	"github.com/scrubdata/scrub/internal/cleaner"
	"github.com/scrubdata/scrub/internal/table"
)

func testResult() *Result {
	tbl := table.New(table.Column{
		Name:  "a",
		Type:  table.Text,
		Cells: []table.Cell{table.TextCell("x")},
	})
	return &Result{
		Filename: "x.csv",
		Table:    tbl,
		Report:   &cleaner.Report{},
	}
}

func TestResultStore_PutGet(t *testing.T) {
	store := NewResultStore(time.Minute)

	id := store.Put(testResult())
	if id == "" {
		t.Fatal("Put returned empty id")
	}

	res, ok := store.Get(id)
	if !ok {
		t.Fatal("Get returned false for fresh result")
	}
	if res.ID != id || res.Filename != "x.csv" {
		t.Errorf("got %+v, want id %s filename x.csv", res, id)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestResultStore_GetUnknown(t *testing.T) {
	store := NewResultStore(time.Minute)
	if _, ok := store.Get("nope"); ok {
		t.Error("Get returned true for unknown id")
	}
}

func TestResultStore_Expiry(t *testing.T) {
	store := NewResultStore(10 * time.Millisecond)

	id := store.Put(testResult())
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(id); ok {
		t.Error("Get returned true for expired result")
	}
}

func TestResultStore_Close(t *testing.T) {
	store := NewResultStore(time.Minute)
	id := store.Put(testResult())

	store.Close()
	store.Close() // second call must not panic

	// The store stays readable after the janitor stops.
	if _, ok := store.Get(id); !ok {
		t.Error("Get returned false after Close")
	}
}

func TestResultStore_UniqueIDs(t *testing.T) {
	store := NewResultStore(time.Minute)
	a := store.Put(testResult())
	b := store.Put(testResult())
	if a == b {
		t.Error("Put returned the same id twice")
	}
}
