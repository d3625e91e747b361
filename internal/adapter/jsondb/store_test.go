package jsondb

import (
	"context"
	"strings"
	"testing"

	"github.com/aldemarvin/extractor/internal/core/model"
	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()

	store, err := NewStore(fs, "data/db/extractor.json")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return store, fs
}

func TestCreateExtractionUniqueness(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	exists, err := store.ExtractionExists(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := false, exists; e != g {
		t.Errorf("exists before create: expected '%v', got '%v'", e, g)
	}

	id, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if id == 0 {
		t.Error("expected a non-zero extraction id")
	}

	exists, err = store.ExtractionExists(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := true, exists; e != g {
		t.Errorf("exists after create: expected '%v', got '%v'", e, g)
	}

	if _, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book"); !errors.Is(err, port.ErrDuplicateExtraction) {
		t.Errorf("expected ErrDuplicateExtraction, got %+v", err)
	}

	// Uniqueness is case-sensitive exact match on the whole triple
	if _, err := store.CreateExtraction(ctx, "clean code", "1st", "Book"); err != nil {
		t.Errorf("case variant should not collide: %+v", err)
	}
	if _, err := store.CreateExtraction(ctx, "Clean Code", "2nd", "Book"); err != nil {
		t.Errorf("different version should not collide: %+v", err)
	}
}

func TestPageCountTracksPages(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	id, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for i := 1; i <= 5; i++ {
		number, err := store.NextPageNumber(ctx, id)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		if e, g := i, number; e != g {
			t.Errorf("next page number: expected '%d', got '%d'", e, g)
		}

		if _, err := store.AddPage(ctx, id, number, "text", ""); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		extraction, err := store.GetExtraction(ctx, id)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		pages, err := store.GetPages(ctx, id)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := len(pages), extraction.PageCount; e != g {
			t.Errorf("page count after insert %d: expected '%d', got '%d'", i, e, g)
		}
	}
}

func TestNextPageNumberAfterDeleteGap(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	id, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	pageIDs := make([]model.PageID, 0, 3)
	for i := 1; i <= 3; i++ {
		pageID, err := store.AddPage(ctx, id, i, "text", "")
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		pageIDs = append(pageIDs, pageID)
	}

	// Deleting the middle page leaves a gap; surviving pages keep their
	// numbers until the next reorder.
	if err := store.DeletePage(ctx, pageIDs[1]); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	extraction, err := store.GetExtraction(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := 2, extraction.PageCount; e != g {
		t.Errorf("page count after delete: expected '%d', got '%d'", e, g)
	}

	pages, err := store.GetPages(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	numbers := make([]int, 0, len(pages))
	for _, p := range pages {
		numbers = append(numbers, p.Number)
	}
	if e, g := "[1 3]", spew.Sprintf("%v", numbers); e != g {
		t.Errorf("surviving numbers: expected '%v', got '%v'", e, g)
	}

	// Highest-plus-one keeps new pages clear of survivors despite the gap
	number, err := store.NextPageNumber(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := 4, number; e != g {
		t.Errorf("next page number with gap: expected '%d', got '%d'", e, g)
	}
}

func TestReorderPagesIsBijection(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	id, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	pageIDs := make([]model.PageID, 0, 4)
	for i := 1; i <= 4; i++ {
		pageID, err := store.AddPage(ctx, id, i, "text", "")
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		pageIDs = append(pageIDs, pageID)
	}

	order := []model.PageID{pageIDs[2], pageIDs[0], pageIDs[3], pageIDs[1]}

	if err := store.ReorderPages(ctx, id, order); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	pages, err := store.GetPages(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for position, page := range pages {
		if e, g := position+1, page.Number; e != g {
			t.Errorf("pages[%d].Number: expected '%d', got '%d'", position, e, g)
		}
		if e, g := order[position], page.ID; e != g {
			t.Errorf("pages[%d].ID: expected '%d', got '%d'", position, e, g)
		}
	}
}

func TestReorderPagesRejectsBadOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	id, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	p1, err := store.AddPage(ctx, id, 1, "a", "")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	p2, err := store.AddPage(ctx, id, 2, "b", "")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.ReorderPages(ctx, id, []model.PageID{p1}); err == nil {
		t.Error("expected an error for an incomplete order")
	}

	if err := store.ReorderPages(ctx, id, []model.PageID{p1, p1}); err == nil {
		t.Error("expected an error for a duplicated id")
	}

	if err := store.ReorderPages(ctx, id, []model.PageID{p1, 9999}); err == nil {
		t.Error("expected an error for a foreign id")
	}

	// Numbers must be untouched after the rejected orders
	pages, err := store.GetPages(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := 2, len(pages); e != g {
		t.Fatalf("len(pages): expected '%d', got '%d'", e, g)
	}
	if e, g := p1, pages[0].ID; e != g {
		t.Errorf("pages[0].ID: expected '%d', got '%d'", e, g)
	}
	if e, g := p2, pages[1].ID; e != g {
		t.Errorf("pages[1].ID: expected '%d', got '%d'", e, g)
	}
}

func TestDeleteExtractionCascades(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	doomed, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	survivor, err := store.CreateExtraction(ctx, "Refactoring", "2nd", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for i := 1; i <= 3; i++ {
		if _, err := store.AddPage(ctx, doomed, i, "doomed", ""); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}
	if _, err := store.AddPage(ctx, survivor, 1, "kept", ""); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.DeleteExtraction(ctx, doomed); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.GetExtraction(ctx, doomed); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %+v", err)
	}

	orphans, err := store.GetPages(ctx, doomed)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := 0, len(orphans); e != g {
		t.Errorf("orphaned pages: expected '%d', got '%d'", e, g)
	}

	kept, err := store.GetPages(ctx, survivor)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := 1, len(kept); e != g {
		t.Errorf("survivor pages: expected '%d', got '%d'", e, g)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	store, fs := newTestStore(t)

	id, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if _, err := store.AddPage(ctx, id, 1, "Hello", "Olá"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if err := store.Close(); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// The file must stay a readable, indented JSON document
	data, err := afero.ReadFile(fs, "data/db/extractor.json")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if !strings.Contains(string(data), "\"extractions\"") || !strings.Contains(string(data), "\"pages\"") {
		t.Errorf("store file is missing named collections:\n%s", data)
	}
	if !strings.Contains(string(data), "\n    ") {
		t.Error("store file is not indented")
	}

	reopened, err := NewStore(fs, "data/db/extractor.json")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	extraction, err := reopened.GetExtraction(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := "Clean Code", extraction.Name; e != g {
		t.Errorf("extraction.Name: expected '%v', got '%v'", e, g)
	}
	if e, g := 1, extraction.PageCount; e != g {
		t.Errorf("extraction.PageCount: expected '%d', got '%d'", e, g)
	}

	// Identifier counters survive the reopen, so ids never get reused
	second, err := reopened.CreateExtraction(ctx, "Refactoring", "2nd", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if second <= id {
		t.Errorf("expected a fresh id greater than '%d', got '%d'", id, second)
	}
}

func TestSnapshotsDoNotAliasStoredState(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	id, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	snapshot, err := store.GetExtraction(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	snapshot.Name = "mutated"

	stored, err := store.GetExtraction(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	if e, g := "Clean Code", stored.Name; e != g {
		t.Errorf("stored.Name after snapshot mutation: expected '%v', got '%v'", e, g)
	}
}

func TestUpdateExtractionPartialUpdate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	id, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	version := "2nd"
	updated, err := store.UpdateExtraction(ctx, id, port.ExtractionUpdates{Version: &version})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Clean Code", updated.Name; e != g {
		t.Errorf("updated.Name: expected '%v', got '%v'", e, g)
	}
	if e, g := "2nd", updated.Version; e != g {
		t.Errorf("updated.Version: expected '%v', got '%v'", e, g)
	}

	// Renaming onto an existing triple must fail
	if _, err := store.CreateExtraction(ctx, "Clean Code", "1st", "Book"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
	first := "1st"
	if _, err := store.UpdateExtraction(ctx, id, port.ExtractionUpdates{Version: &first}); !errors.Is(err, port.ErrDuplicateExtraction) {
		t.Errorf("expected ErrDuplicateExtraction, got %+v", err)
	}
}
