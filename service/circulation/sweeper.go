package circulation

import (
	"context"
	"time"

	"librarycirc/model"
	"librarycirc/util/dates"
)

// Sweeper reclassifies open loans whose due date has passed. It is safe to
// run concurrently with Issue/Return: each loan is visited under the ledger
// lock, and a loan returned in the meantime is left alone.
type Sweeper struct {
	ledger Ledger
	cfg    Config
	now    func() time.Time

	// OnSweep, if set, is called after each pass with the number of loans
	// newly flipped to overdue. The sweeper itself never logs.
	OnSweep func(transitioned int)
}

func NewSweeper(l Ledger, cfg Config) *Sweeper {
	return &Sweeper{
		ledger: l,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RunOnce scans open loans and flips issued→overdue where due has passed,
// storing a provisional fine. Re-sweeping an already-overdue loan refreshes
// the fine but does not count as a transition, so sweeping is idempotent.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	now := s.now()
	transitioned := 0
	for _, open := range [...]model.LoanStatus{model.LoanIssued, model.LoanOverdue} {
		for _, l := range s.ledger.List(open) {
			if !now.After(l.DueAt) {
				continue
			}
			_ = s.ledger.Update(l.ID, func(l *model.Loan) error {
				// Re-check under the lock; a concurrent return wins.
				if l.Status == model.LoanReturned || !now.After(l.DueAt) {
					return nil
				}
				if l.Status == model.LoanIssued {
					l.Status = model.LoanOverdue
					transitioned++
				}
				fine := float64(dates.DaysBetween(l.DueAt, now)) * s.cfg.FineRatePerDay
				l.FineAmount = &fine
				return nil
			})
		}
		select {
		case <-ctx.Done():
			return transitioned
		default:
		}
	}
	return transitioned
}

// Run sweeps on the given interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n := s.RunOnce(ctx)
			if s.OnSweep != nil {
				s.OnSweep(n)
			}
		}
	}
}
