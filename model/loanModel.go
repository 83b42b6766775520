// model/loan.go
package model

import "time"

type LoanStatus string

const (
	LoanIssued   LoanStatus = "issued"
	LoanOverdue  LoanStatus = "overdue"
	LoanReturned LoanStatus = "returned"
)

// Open reports whether the loan still holds a copy.
func (s LoanStatus) Open() bool { return s == LoanIssued || s == LoanOverdue }

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanIssued, LoanOverdue, LoanReturned:
		return true
	}
	return false
}

type Loan struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	BorrowerID int64      `json:"borrower_id"`
	Status     LoanStatus `json:"status"`
	IssuedAt   time.Time  `json:"issued_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	FineAmount *float64   `json:"fine_amount,omitempty"`
}
