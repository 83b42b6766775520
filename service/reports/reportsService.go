// Package reports builds the dashboard-style aggregates. It is a read-only
// consumer of the three stores; fines come from the stored loan values, never
// from recomputing date math inline.
package reports

import (
	"context"
	"time"

	"librarycirc/model"
	"librarycirc/util/dates"
)

type Catalog interface {
	List() []model.Book
	Lookup(id int64) (model.Book, error)
}

type Borrowers interface {
	List() []model.Borrower
	Lookup(id int64) (model.Borrower, error)
}

type Ledger interface {
	List(status model.LoanStatus) []model.Loan
	ListByBorrower(borrowerID int64) []model.Loan
}

type Summary struct {
	Titles           int     `json:"titles"`
	CopiesTotal      int64   `json:"copies_total"`
	CopiesAvailable  int64   `json:"copies_available"`
	Borrowers        int     `json:"borrowers"`
	OpenLoans        int     `json:"open_loans"`
	OverdueLoans     int     `json:"overdue_loans"`
	OutstandingFines float64 `json:"outstanding_fines"`
}

type OverdueRow struct {
	LoanID       int64     `json:"loan_id"`
	BookTitle    string    `json:"book_title"`
	BorrowerName string    `json:"borrower_name"`
	DueAt        time.Time `json:"due_at"`
	DaysOverdue  int64     `json:"days_overdue"`
	FineAmount   float64   `json:"fine_amount"`
}

type ActivityRow struct {
	BorrowerID int64  `json:"borrower_id"`
	Name       string `json:"name"`
	Course     string `json:"course"`
	TotalLoans int    `json:"total_loans"`
	OpenLoans  int    `json:"open_loans"`
	Returned   int    `json:"returned"`
}

type Service interface {
	Summary(ctx context.Context) Summary
	Overdue(ctx context.Context) []OverdueRow
	BorrowerActivity(ctx context.Context) []ActivityRow
}

type service struct {
	catalog   Catalog
	borrowers Borrowers
	ledger    Ledger
	now       func() time.Time
}

func New(c Catalog, b Borrowers, l Ledger) Service {
	return &service{
		catalog:   c,
		borrowers: b,
		ledger:    l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Summary(ctx context.Context) Summary {
	var sum Summary
	for _, b := range s.catalog.List() {
		sum.Titles++
		sum.CopiesTotal += b.CopiesTotal
		sum.CopiesAvailable += b.CopiesAvailable
	}
	sum.Borrowers = len(s.borrowers.List())
	for _, l := range s.ledger.List("") {
		if l.Status.Open() {
			sum.OpenLoans++
		}
		if l.Status == model.LoanOverdue {
			sum.OverdueLoans++
			if l.FineAmount != nil {
				sum.OutstandingFines += *l.FineAmount
			}
		}
	}
	return sum
}

func (s *service) Overdue(ctx context.Context) []OverdueRow {
	now := s.now()
	loans := s.ledger.List(model.LoanOverdue)
	out := make([]OverdueRow, 0, len(loans))
	for _, l := range loans {
		row := OverdueRow{
			LoanID:      l.ID,
			DueAt:       l.DueAt,
			DaysOverdue: dates.DaysBetween(l.DueAt, now),
		}
		if b, err := s.catalog.Lookup(l.BookID); err == nil {
			row.BookTitle = b.Title
		}
		if br, err := s.borrowers.Lookup(l.BorrowerID); err == nil {
			row.BorrowerName = br.Name
		}
		if l.FineAmount != nil {
			row.FineAmount = *l.FineAmount
		}
		out = append(out, row)
	}
	return out
}

func (s *service) BorrowerActivity(ctx context.Context) []ActivityRow {
	borrowers := s.borrowers.List()
	out := make([]ActivityRow, 0, len(borrowers))
	for _, b := range borrowers {
		row := ActivityRow{BorrowerID: b.ID, Name: b.Name, Course: b.Course}
		for _, l := range s.ledger.ListByBorrower(b.ID) {
			row.TotalLoans++
			if l.Status.Open() {
				row.OpenLoans++
			} else {
				row.Returned++
			}
		}
		out = append(out, row)
	}
	return out
}
