// repository/borrower/repo.go
package borrower

import (
	"net/mail"
	"strings"
	"sync"

	"librarycirc/liberr"
	"librarycirc/model"
)

// Registry owns the borrower records. Records are immutable once registered;
// there is no update path, only Register/Lookup/Search.
type Registry struct {
	mu     sync.RWMutex
	byID   map[int64]model.Borrower
	order  []int64
	nextID int64
}

func New() *Registry {
	return &Registry{byID: make(map[int64]model.Borrower)}
}

// Register assigns a new id. Name, email and course are required; the email
// must parse as an address.
func (r *Registry) Register(b model.Borrower) (int64, error) {
	if strings.TrimSpace(b.Name) == "" {
		return 0, liberr.New(liberr.ErrValidation, "name is required")
	}
	if strings.TrimSpace(b.Course) == "" {
		return 0, liberr.New(liberr.ErrValidation, "course is required")
	}
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))
	if b.Email == "" {
		return 0, liberr.New(liberr.ErrValidation, "email is required")
	}
	if _, err := mail.ParseAddress(b.Email); err != nil {
		return 0, liberr.Newf(liberr.ErrValidation, "malformed email %q", b.Email)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	r.byID[b.ID] = b
	r.order = append(r.order, b.ID)
	return b.ID, nil
}

func (r *Registry) Lookup(id int64) (model.Borrower, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	if !ok {
		return model.Borrower{}, liberr.Newf(liberr.ErrNotFound, "borrower %d not found", id)
	}
	return b, nil
}

// List returns all borrowers in registration order.
func (r *Registry) List() []model.Borrower {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Borrower, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Search matches a case-insensitive substring against name, email and course.
func (r *Registry) Search(q string) []model.Borrower {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return r.List()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Borrower, 0)
	for _, id := range r.order {
		b := r.byID[id]
		if strings.Contains(strings.ToLower(b.Name), q) ||
			strings.Contains(b.Email, q) ||
			strings.Contains(strings.ToLower(b.Course), q) {
			out = append(out, b)
		}
	}
	return out
}
