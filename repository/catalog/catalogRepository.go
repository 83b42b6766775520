// repository/catalog/repo.go
package catalog

import (
	"strings"
	"sync"

	"librarycirc/liberr"
	"librarycirc/model"
)

// Store owns the book records and their copy counts. Copy counts move only
// through ReserveCopy/ReleaseCopy so that 0 <= copies_available <= copies_total
// holds at all times.
type Store struct {
	mu     sync.RWMutex
	byID   map[int64]*entry
	order  []int64
	nextID int64
}

// entry carries its own lock so reserve/release on different books do not
// serialize against each other; the store lock only guards the map and order.
type entry struct {
	mu   sync.Mutex
	book model.Book
}

func New() *Store {
	return &Store{byID: make(map[int64]*entry)}
}

// Register assigns a new id and sets copies_available = copies_total.
func (s *Store) Register(b model.Book) (int64, error) {
	if strings.TrimSpace(b.Title) == "" {
		return 0, liberr.New(liberr.ErrValidation, "title is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		return 0, liberr.New(liberr.ErrValidation, "author is required")
	}
	if b.CopiesTotal < 1 {
		return 0, liberr.New(liberr.ErrValidation, "copies_total must be >= 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	b.CopiesAvailable = b.CopiesTotal
	s.byID[b.ID] = &entry{book: b}
	s.order = append(s.order, b.ID)
	return b.ID, nil
}

func (s *Store) entryFor(id int64) (*entry, error) {
	s.mu.RLock()
	e, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, liberr.Newf(liberr.ErrNotFound, "book %d not found", id)
	}
	return e, nil
}

// ReserveCopy atomically takes one copy. Concurrent callers on the same book
// serialize here, so at most copies_available of them succeed.
func (s *Store) ReserveCopy(id int64) error {
	e, err := s.entryFor(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.book.CopiesAvailable <= 0 {
		return liberr.Newf(liberr.ErrNoCopies, "no copies of book %d available", id)
	}
	e.book.CopiesAvailable--
	return nil
}

// ReleaseCopy atomically puts one copy back, capped at copies_total. The cap
// should never be hit by a correct caller; crossing it is reported as an
// invariant violation rather than silently clamped.
func (s *Store) ReleaseCopy(id int64) error {
	e, err := s.entryFor(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.book.CopiesAvailable >= e.book.CopiesTotal {
		return liberr.Newf(liberr.ErrInvariant, "book %d already has all %d copies", id, e.book.CopiesTotal)
	}
	e.book.CopiesAvailable++
	return nil
}

func (s *Store) Lookup(id int64) (model.Book, error) {
	e, err := s.entryFor(id)
	if err != nil {
		return model.Book{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book, nil
}

// List returns all books in insertion order.
func (s *Store) List() []model.Book {
	return s.snapshot(func(model.Book) bool { return true })
}

// Search matches a case-insensitive substring against title, author,
// category and ISBN. Results keep insertion order.
func (s *Store) Search(q string) []model.Book {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return s.List()
	}
	return s.snapshot(func(b model.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.Category), q) ||
			strings.Contains(strings.ToLower(b.ISBN), q)
	})
}

func (s *Store) snapshot(keep func(model.Book) bool) []model.Book {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.byID[id])
	}
	s.mu.RUnlock()

	out := make([]model.Book, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		b := e.book
		e.mu.Unlock()
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
