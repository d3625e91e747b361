package jsondb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/aldemarvin/extractor/internal/core/model"
	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Store keeps both record collections in a single JSON file. All mutations
// happen in memory under the mutex and are flushed as one atomic
// write-then-rename, so readers and crash recovery only ever see a complete,
// consistent state.
type Store struct {
	fs    afero.Fs
	path  string
	mutex sync.RWMutex
	db    *database
}

func NewStore(fs afero.Fs, path string) (*Store, error) {
	store := &Store{
		fs:   fs,
		path: path,
	}

	if err := store.load(); err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
}

func (s *Store) load() error {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return errors.WithStack(err)
	}

	if !exists {
		s.db = &database{
			Extractions: make([]extractionRecord, 0),
			Pages:       make([]pageRecord, 0),
		}
		return nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return errors.WithStack(err)
	}

	var db database
	if err := json.Unmarshal(data, &db); err != nil {
		return errors.Wrapf(err, "could not parse store file '%s'", s.path)
	}

	if db.Extractions == nil {
		db.Extractions = make([]extractionRecord, 0)
	}
	if db.Pages == nil {
		db.Pages = make([]pageRecord, 0)
	}

	s.db = &db

	return nil
}

// flush serializes the whole database with stable indentation and renames a
// sibling temp file over the store file. Callers must hold the write lock.
func (s *Store) flush() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.WithStack(err)
	}

	data, err := json.MarshalIndent(s.db, "", "    ")
	if err != nil {
		return errors.WithStack(err)
	}

	tmp := s.path + "-new"

	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return errors.WithStack(err)
	}

	if err := s.fs.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "could not overwrite store file")
	}

	return nil
}

// CreateExtraction implements port.Store.
func (s *Store) CreateExtraction(ctx context.Context, name string, version string, docType string) (model.ExtractionID, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.findExtractionByTriple(name, version, docType) != nil {
		return 0, errors.WithStack(port.ErrDuplicateExtraction)
	}

	now := time.Now().UTC()

	s.db.LastExtractionID++
	s.db.Extractions = append(s.db.Extractions, extractionRecord{
		ID:        s.db.LastExtractionID,
		Name:      name,
		Version:   version,
		DocType:   docType,
		PageCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	})

	if err := s.flush(); err != nil {
		s.db.Extractions = s.db.Extractions[:len(s.db.Extractions)-1]
		s.db.LastExtractionID--
		return 0, errors.WithStack(err)
	}

	return model.ExtractionID(s.db.LastExtractionID), nil
}

// ExtractionExists implements port.Store.
func (s *Store) ExtractionExists(ctx context.Context, name string, version string, docType string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.findExtractionByTriple(name, version, docType) != nil, nil
}

// GetExtraction implements port.Store.
func (s *Store) GetExtraction(ctx context.Context, id model.ExtractionID) (*model.Extraction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record := s.findExtraction(int64(id))
	if record == nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return record.toModel(), nil
}

// QueryExtractions implements port.Store.
func (s *Store) QueryExtractions(ctx context.Context) ([]*model.Extraction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	extractions := make([]*model.Extraction, 0, len(s.db.Extractions))
	for i := range s.db.Extractions {
		extractions = append(extractions, s.db.Extractions[i].toModel())
	}

	sort.SliceStable(extractions, func(i, j int) bool {
		return extractions[i].CreatedAt.After(extractions[j].CreatedAt)
	})

	return extractions, nil
}

// UpdateExtraction implements port.Store.
func (s *Store) UpdateExtraction(ctx context.Context, id model.ExtractionID, updates port.ExtractionUpdates) (*model.Extraction, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := s.findExtraction(int64(id))
	if record == nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	previous := *record

	if updates.Name != nil {
		record.Name = *updates.Name
	}
	if updates.Version != nil {
		record.Version = *updates.Version
	}
	if updates.DocType != nil {
		record.DocType = *updates.DocType
	}

	if other := s.findExtractionByTriple(record.Name, record.Version, record.DocType); other != nil && other.ID != record.ID {
		*record = previous
		return nil, errors.WithStack(port.ErrDuplicateExtraction)
	}

	record.UpdatedAt = time.Now().UTC()

	if err := s.flush(); err != nil {
		*record = previous
		return nil, errors.WithStack(err)
	}

	return record.toModel(), nil
}

// DeleteExtraction implements port.Store. Pages and extraction disappear in
// the same flush, so no orphaned page can survive a crash mid-delete.
func (s *Store) DeleteExtraction(ctx context.Context, id model.ExtractionID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.findExtraction(int64(id)) == nil {
		return errors.WithStack(port.ErrNotFound)
	}

	previousPages := s.db.Pages
	previousExtractions := s.db.Extractions

	pages := make([]pageRecord, 0, len(s.db.Pages))
	for _, p := range s.db.Pages {
		if p.ExtractionID == int64(id) {
			continue
		}
		pages = append(pages, p)
	}
	s.db.Pages = pages

	extractions := make([]extractionRecord, 0, len(s.db.Extractions))
	for _, e := range s.db.Extractions {
		if e.ID == int64(id) {
			continue
		}
		extractions = append(extractions, e)
	}
	s.db.Extractions = extractions

	if err := s.flush(); err != nil {
		s.db.Pages = previousPages
		s.db.Extractions = previousExtractions
		return errors.WithStack(err)
	}

	return nil
}

// AddPage implements port.Store.
func (s *Store) AddPage(ctx context.Context, extractionID model.ExtractionID, number int, originalText string, translatedText string) (model.PageID, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	extraction := s.findExtraction(int64(extractionID))
	if extraction == nil {
		return 0, errors.WithStack(port.ErrNotFound)
	}

	now := time.Now().UTC()

	s.db.LastPageID++
	s.db.Pages = append(s.db.Pages, pageRecord{
		ID:             s.db.LastPageID,
		ExtractionID:   int64(extractionID),
		Number:         number,
		OriginalText:   originalText,
		TranslatedText: translatedText,
		CreatedAt:      now,
		UpdatedAt:      now,
	})

	previous := *extraction
	extraction.PageCount++
	extraction.UpdatedAt = now

	if err := s.flush(); err != nil {
		s.db.Pages = s.db.Pages[:len(s.db.Pages)-1]
		s.db.LastPageID--
		*extraction = previous
		return 0, errors.WithStack(err)
	}

	return model.PageID(s.db.LastPageID), nil
}

// GetPage implements port.Store.
func (s *Store) GetPage(ctx context.Context, id model.PageID) (*model.Page, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record := s.findPage(int64(id))
	if record == nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return record.toModel(), nil
}

// GetPages implements port.Store.
func (s *Store) GetPages(ctx context.Context, extractionID model.ExtractionID) ([]*model.Page, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	pages := make([]*model.Page, 0)
	for i := range s.db.Pages {
		if s.db.Pages[i].ExtractionID != int64(extractionID) {
			continue
		}
		pages = append(pages, s.db.Pages[i].toModel())
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Number < pages[j].Number
	})

	return pages, nil
}

// UpdatePage implements port.Store.
func (s *Store) UpdatePage(ctx context.Context, id model.PageID, updates port.PageUpdates) (*model.Page, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := s.findPage(int64(id))
	if record == nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	previous := *record

	if updates.OriginalText != nil {
		record.OriginalText = *updates.OriginalText
	}
	if updates.TranslatedText != nil {
		record.TranslatedText = *updates.TranslatedText
	}

	record.UpdatedAt = time.Now().UTC()

	if err := s.flush(); err != nil {
		*record = previous
		return nil, errors.WithStack(err)
	}

	return record.toModel(), nil
}

// DeletePage implements port.Store. Surviving pages are not renumbered;
// numbering becomes dense again on the next explicit reorder.
func (s *Store) DeletePage(ctx context.Context, id model.PageID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := s.findPage(int64(id))
	if record == nil {
		return errors.WithStack(port.ErrNotFound)
	}

	extractionID := record.ExtractionID

	previousPages := s.db.Pages

	pages := make([]pageRecord, 0, len(s.db.Pages)-1)
	for _, p := range s.db.Pages {
		if p.ID == int64(id) {
			continue
		}
		pages = append(pages, p)
	}
	s.db.Pages = pages

	extraction := s.findExtraction(extractionID)

	var previousExtraction extractionRecord
	if extraction != nil {
		previousExtraction = *extraction
		if extraction.PageCount > 0 {
			extraction.PageCount--
		}
		extraction.UpdatedAt = time.Now().UTC()
	}

	if err := s.flush(); err != nil {
		s.db.Pages = previousPages
		if extraction != nil {
			*extraction = previousExtraction
		}
		return errors.WithStack(err)
	}

	return nil
}

// ReorderPages implements port.Store. The supplied order must be a
// permutation of the extraction's page identifiers; numbers 1..N are
// assigned in one mutation and flushed once, so no intermediate state with
// duplicate or missing numbers is ever observable.
func (s *Store) ReorderPages(ctx context.Context, extractionID model.ExtractionID, order []model.PageID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	owned := make(map[int64]*pageRecord)
	for i := range s.db.Pages {
		if s.db.Pages[i].ExtractionID == int64(extractionID) {
			owned[s.db.Pages[i].ID] = &s.db.Pages[i]
		}
	}

	if len(order) != len(owned) {
		return errors.Errorf("order has %d entries, extraction has %d pages", len(order), len(owned))
	}

	seen := make(map[int64]bool, len(order))
	for _, id := range order {
		record, ok := owned[int64(id)]
		if !ok {
			return errors.Wrapf(port.ErrNotFound, "page '%d' does not belong to extraction '%d'", id, extractionID)
		}
		if seen[record.ID] {
			return errors.Errorf("page '%d' appears twice in the order", id)
		}
		seen[record.ID] = true
	}

	previousPages := make([]pageRecord, len(s.db.Pages))
	copy(previousPages, s.db.Pages)

	now := time.Now().UTC()
	for position, id := range order {
		record := owned[int64(id)]
		record.Number = position + 1
		record.UpdatedAt = now
	}

	if err := s.flush(); err != nil {
		s.db.Pages = previousPages
		return errors.WithStack(err)
	}

	return nil
}

// NextPageNumber implements port.Store. Highest-plus-one rather than
// count-plus-one, so numbers stay collision-free after deletes left a gap.
func (s *Store) NextPageNumber(ctx context.Context, extractionID model.ExtractionID) (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	highest := 0
	for i := range s.db.Pages {
		if s.db.Pages[i].ExtractionID != int64(extractionID) {
			continue
		}
		if s.db.Pages[i].Number > highest {
			highest = s.db.Pages[i].Number
		}
	}

	return highest + 1, nil
}

// Close implements port.Store.
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tmp := s.path + "-new"
	if err := s.fs.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *Store) findExtraction(id int64) *extractionRecord {
	for i := range s.db.Extractions {
		if s.db.Extractions[i].ID == id {
			return &s.db.Extractions[i]
		}
	}
	return nil
}

func (s *Store) findExtractionByTriple(name string, version string, docType string) *extractionRecord {
	for i := range s.db.Extractions {
		e := &s.db.Extractions[i]
		if e.Name == name && e.Version == version && e.DocType == docType {
			return e
		}
	}
	return nil
}

func (s *Store) findPage(id int64) *pageRecord {
	for i := range s.db.Pages {
		if s.db.Pages[i].ID == id {
			return &s.db.Pages[i]
		}
	}
	return nil
}

var _ port.Store = &Store{}
