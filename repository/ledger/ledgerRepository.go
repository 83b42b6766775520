// repository/ledger/repo.go
package ledger

import (
	"sync"

	"librarycirc/liberr"
	"librarycirc/model"
)

// Store is the append-only loan ledger. Records are never deleted; they are
// the audit trail. All mutation goes through Update under the store lock, the
// in-memory stand-in for the row lock a database would take, so a return and
// a sweep on the same loan cannot interleave.
type Store struct {
	mu     sync.RWMutex
	byID   map[int64]*model.Loan
	order  []int64
	nextID int64
}

func New() *Store {
	return &Store{byID: make(map[int64]*model.Loan)}
}

// Append stores the loan under a fresh monotonic id and returns it.
func (s *Store) Append(l model.Loan) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	l.ID = s.nextID
	s.byID[l.ID] = &l
	s.order = append(s.order, l.ID)
	return l.ID
}

func (s *Store) Get(id int64) (model.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.byID[id]
	if !ok {
		return model.Loan{}, liberr.Newf(liberr.ErrNotFound, "loan %d not found", id)
	}
	return *l, nil
}

// Update runs fn on the record while holding the store lock. fn returning an
// error leaves the record as it found it only if fn itself did not touch it;
// callers mutate after all checks pass.
func (s *Store) Update(id int64, fn func(*model.Loan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byID[id]
	if !ok {
		return liberr.Newf(liberr.ErrNotFound, "loan %d not found", id)
	}
	return fn(l)
}

// List returns loans in issue order, filtered by status; "" means all.
func (s *Store) List(status model.LoanStatus) []model.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Loan, 0, len(s.order))
	for _, id := range s.order {
		l := s.byID[id]
		if status == "" || l.Status == status {
			out = append(out, *l)
		}
	}
	return out
}

// ListByBorrower returns the borrower's loans in issue order.
func (s *Store) ListByBorrower(borrowerID int64) []model.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Loan, 0)
	for _, id := range s.order {
		l := s.byID[id]
		if l.BorrowerID == borrowerID {
			out = append(out, *l)
		}
	}
	return out
}

// OpenByBook counts open loans per book, for conservation checks and reports.
func (s *Store) OpenByBook(bookID int64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, l := range s.byID {
		if l.BookID == bookID && l.Status.Open() {
			n++
		}
	}
	return n
}
