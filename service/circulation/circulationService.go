package circulation

import (
	"context"
	"time"

	"librarycirc/liberr"
	"librarycirc/model"
	"librarycirc/util/dates"
)

// Catalog is the slice of the catalog store the engine needs.
type Catalog interface {
	Lookup(id int64) (model.Book, error)
	ReserveCopy(id int64) error
	ReleaseCopy(id int64) error
}

// Borrowers is the slice of the borrower registry the engine needs.
type Borrowers interface {
	Lookup(id int64) (model.Borrower, error)
}

// Ledger is the loan store. Update must run its callback under the per-loan
// lock; the engine relies on that for return/sweep exclusion.
type Ledger interface {
	Append(model.Loan) int64
	Get(id int64) (model.Loan, error)
	Update(id int64, fn func(*model.Loan) error) error
	List(status model.LoanStatus) []model.Loan
	ListByBorrower(borrowerID int64) []model.Loan
}

type Config struct {
	LoanPeriod     time.Duration
	FineRatePerDay float64
}

type Service interface {
	// Issue reserves a copy and opens a loan due LoanPeriod from now.
	Issue(ctx context.Context, bookID, borrowerID int64) (model.Loan, error)

	// Return closes the loan, settles the fine and frees the copy. A second
	// return on the same loan is an error, not a no-op.
	Return(ctx context.Context, loanID int64) (model.Loan, error)

	Get(ctx context.Context, loanID int64) (model.Loan, error)
	List(ctx context.Context, status model.LoanStatus) []model.Loan
	ListByBorrower(ctx context.Context, borrowerID int64) []model.Loan
}

type service struct {
	catalog   Catalog
	borrowers Borrowers
	ledger    Ledger
	cfg       Config
	now       func() time.Time
}

func New(c Catalog, b Borrowers, l Ledger, cfg Config) Service {
	return &service{
		catalog:   c,
		borrowers: b,
		ledger:    l,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Issue(ctx context.Context, bookID, borrowerID int64) (model.Loan, error) {
	if _, err := s.borrowers.Lookup(borrowerID); err != nil {
		return model.Loan{}, err
	}

	// ReserveCopy is the atomic step: it reports NOT_FOUND for an unknown
	// book and NO_COPIES_AVAILABLE when the count is zero, and at most
	// copies_available concurrent issues get past it.
	if err := s.catalog.ReserveCopy(bookID); err != nil {
		return model.Loan{}, err
	}

	now := s.now()
	loan := model.Loan{
		BookID:     bookID,
		BorrowerID: borrowerID,
		Status:     model.LoanIssued,
		IssuedAt:   now,
		DueAt:      now.Add(s.cfg.LoanPeriod),
	}
	loan.ID = s.ledger.Append(loan)
	return loan, nil
}

func (s *service) Return(ctx context.Context, loanID int64) (model.Loan, error) {
	now := s.now()
	var out model.Loan
	err := s.ledger.Update(loanID, func(l *model.Loan) error {
		if l.Status == model.LoanReturned {
			return liberr.Newf(liberr.ErrAlreadyReturned, "loan %d already returned", loanID)
		}
		// The fine is always settled from the actual return time. A value the
		// sweeper stored earlier is provisional and gets overwritten here; a
		// loan past due that no sweep has seen yet is fined all the same.
		if now.After(l.DueAt) {
			fine := float64(dates.DaysBetween(l.DueAt, now)) * s.cfg.FineRatePerDay
			l.FineAmount = &fine
		}
		ret := now
		l.Status = model.LoanReturned
		l.ReturnedAt = &ret
		out = *l
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}

	if err := s.catalog.ReleaseCopy(out.BookID); err != nil {
		return model.Loan{}, err
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, loanID int64) (model.Loan, error) {
	return s.ledger.Get(loanID)
}

func (s *service) List(ctx context.Context, status model.LoanStatus) []model.Loan {
	return s.ledger.List(status)
}

func (s *service) ListByBorrower(ctx context.Context, borrowerID int64) []model.Loan {
	return s.ledger.ListByBorrower(borrowerID)
}
