package circulation

import (
	"context"
	"sync"
	"testing"
	"time"

	"librarycirc/liberr"
	"librarycirc/model"
	borrowerrepo "librarycirc/repository/borrower"
	catalogrepo "librarycirc/repository/catalog"
	ledgerrepo "librarycirc/repository/ledger"

	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

type fixture struct {
	catalog  *catalogrepo.Store
	registry *borrowerrepo.Registry
	ledger   *ledgerrepo.Store
	svc      *service
	clock    *fakeClock
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		catalog:  catalogrepo.New(),
		registry: borrowerrepo.New(),
		ledger:   ledgerrepo.New(),
		clock:    &fakeClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
	}
	cfg := Config{LoanPeriod: 14 * day, FineRatePerDay: 1.0}
	f.svc = New(f.catalog, f.registry, f.ledger, cfg).(*service)
	f.svc.now = f.clock.Now
	return f
}

func (f *fixture) addBook(t *testing.T, copies int64) int64 {
	t.Helper()
	id, err := f.catalog.Register(model.Book{
		Title:       "Refactoring",
		Author:      "Martin Fowler",
		CopiesTotal: copies,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) addBorrower(t *testing.T, name, email string) int64 {
	t.Helper()
	id, err := f.registry.Register(model.Borrower{
		Name:   name,
		Email:  email,
		Course: "Engineering",
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) available(t *testing.T, bookID int64) int64 {
	t.Helper()
	b, err := f.catalog.Lookup(bookID)
	require.NoError(t, err)
	return b.CopiesAvailable
}

func TestIssue_SetsDueDateFourteenDaysOut(t *testing.T) {
	f := newFixture(t)
	bookID := f.addBook(t, 1)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	loan, err := f.svc.Issue(context.Background(), bookID, borrowerID)
	require.NoError(t, err)
	require.Equal(t, model.LoanIssued, loan.Status)
	require.Equal(t, f.clock.Now(), loan.IssuedAt)
	require.Equal(t, f.clock.Now().Add(14*day), loan.DueAt)
	require.Nil(t, loan.ReturnedAt)
	require.Nil(t, loan.FineAmount)
	require.Equal(t, int64(0), f.available(t, bookID))
}

func TestIssue_UnknownIDs(t *testing.T) {
	f := newFixture(t)
	bookID := f.addBook(t, 1)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	_, err := f.svc.Issue(context.Background(), bookID, 404)
	require.Equal(t, liberr.ErrNotFound, liberr.Code(err))

	_, err = f.svc.Issue(context.Background(), 404, borrowerID)
	require.Equal(t, liberr.ErrNotFound, liberr.Code(err))

	// failed issues must not create loan records
	require.Empty(t, f.ledger.List(""))
	require.Equal(t, int64(1), f.available(t, bookID))
}

// Two copies, three borrowers: the third issue must fail and a return
// must free a copy again.
func TestIssue_ExhaustsCopiesThenReturns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, 2)
	a := f.addBorrower(t, "Ada", "ada@example.edu")
	b := f.addBorrower(t, "Grace", "grace@example.edu")
	c := f.addBorrower(t, "Edsger", "edsger@example.edu")

	loanA, err := f.svc.Issue(ctx, bookID, a)
	require.NoError(t, err)
	require.Equal(t, int64(1), f.available(t, bookID))

	_, err = f.svc.Issue(ctx, bookID, b)
	require.NoError(t, err)
	require.Equal(t, int64(0), f.available(t, bookID))

	_, err = f.svc.Issue(ctx, bookID, c)
	require.Equal(t, liberr.ErrNoCopies, liberr.Code(err))
	require.Len(t, f.ledger.List(""), 2)

	got, err := f.svc.Return(ctx, loanA.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanReturned, got.Status)
	require.Equal(t, int64(1), f.available(t, bookID))
}

func TestReturn_NotIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, 1)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	loan, err := f.svc.Issue(ctx, bookID, borrowerID)
	require.NoError(t, err)

	_, err = f.svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	_, err = f.svc.Return(ctx, loan.ID)
	require.Equal(t, liberr.ErrAlreadyReturned, liberr.Code(err))

	// the double return must not release a second copy
	require.Equal(t, int64(1), f.available(t, bookID))
}

func TestReturn_UnknownLoan(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Return(context.Background(), 123)
	require.Equal(t, liberr.ErrNotFound, liberr.Code(err))
}

func TestReturn_OnTimeHasNoFine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, 1)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	loan, err := f.svc.Issue(ctx, bookID, borrowerID)
	require.NoError(t, err)

	f.clock.Advance(13 * day)
	got, err := f.svc.Return(ctx, loan.ID)
	require.NoError(t, err)
	require.Nil(t, got.FineAmount)
	require.NotNil(t, got.ReturnedAt)
}

// A loan past due that no sweep has visited still gets fined at return.
func TestReturn_LateWithoutSweepComputesFine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, 1)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	loan, err := f.svc.Issue(ctx, bookID, borrowerID)
	require.NoError(t, err)

	// 14-day period + 3 days late
	f.clock.Advance(17 * day)
	got, err := f.svc.Return(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanReturned, got.Status)
	require.NotNil(t, got.FineAmount)
	require.Equal(t, 3.0, *got.FineAmount)
}

// Sweep at day 20, return at day 25: the fine stored by the sweep is
// provisional and the return recomputes it from the actual return date.
func TestReturn_RecomputesSweeperFine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, 1)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	loan, err := f.svc.Issue(ctx, bookID, borrowerID)
	require.NoError(t, err)

	sw := NewSweeper(f.ledger, f.svc.cfg)
	sw.now = f.clock.Now

	f.clock.Advance(20 * day)
	require.Equal(t, 1, sw.RunOnce(ctx))

	swept, err := f.ledger.Get(loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanOverdue, swept.Status)
	require.NotNil(t, swept.FineAmount)
	require.Equal(t, 6.0, *swept.FineAmount)

	f.clock.Advance(5 * day)
	got, err := f.svc.Return(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanReturned, got.Status)
	require.NotNil(t, got.FineAmount)
	require.Equal(t, 11.0, *got.FineAmount)
	require.Equal(t, int64(1), f.available(t, bookID))
}

func TestListProjections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, 3)
	a := f.addBorrower(t, "Ada", "ada@example.edu")
	b := f.addBorrower(t, "Grace", "grace@example.edu")

	first, err := f.svc.Issue(ctx, bookID, a)
	require.NoError(t, err)
	_, err = f.svc.Issue(ctx, bookID, b)
	require.NoError(t, err)
	_, err = f.svc.Issue(ctx, bookID, a)
	require.NoError(t, err)

	_, err = f.svc.Return(ctx, first.ID)
	require.NoError(t, err)

	require.Len(t, f.svc.List(ctx, ""), 3)
	require.Len(t, f.svc.List(ctx, model.LoanIssued), 2)
	require.Len(t, f.svc.List(ctx, model.LoanReturned), 1)
	require.Len(t, f.svc.ListByBorrower(ctx, a), 2)
	require.Len(t, f.svc.ListByBorrower(ctx, b), 1)
}

// Conservation: copies_available = copies_total - open loans, across a mix
// of issues and returns.
func TestConservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, 5)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	var open []int64
	for i := 0; i < 4; i++ {
		l, err := f.svc.Issue(ctx, bookID, borrowerID)
		require.NoError(t, err)
		open = append(open, l.ID)
	}
	_, err := f.svc.Return(ctx, open[0])
	require.NoError(t, err)
	_, err = f.svc.Return(ctx, open[2])
	require.NoError(t, err)

	b, err := f.catalog.Lookup(bookID)
	require.NoError(t, err)
	require.Equal(t, b.CopiesTotal-f.ledger.OpenByBook(bookID), b.CopiesAvailable)
	require.Equal(t, int64(3), b.CopiesAvailable)
}

// N concurrent issues against K copies: exactly K loans, N-K NO_COPIES
// failures, zero copies left.
func TestIssue_Concurrent(t *testing.T) {
	const n, k = 40, 5

	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, k)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Issue(ctx, bookID, borrowerID)
		}(i)
	}
	wg.Wait()

	var ok, noStock int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case liberr.Code(err) == liberr.ErrNoCopies:
			noStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, k, ok)
	require.Equal(t, n-k, noStock)
	require.Len(t, f.ledger.List(""), k)
	require.Equal(t, int64(0), f.available(t, bookID))
}

// A sweep racing a return on the same loan must leave exactly one final
// state: returned, with the fine computed from the return date.
func TestSweepReturnRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookID := f.addBook(t, 1)
	borrowerID := f.addBorrower(t, "Ada", "ada@example.edu")

	loan, err := f.svc.Issue(ctx, bookID, borrowerID)
	require.NoError(t, err)

	sw := NewSweeper(f.ledger, f.svc.cfg)
	sw.now = f.clock.Now
	f.clock.Advance(16 * day)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sw.RunOnce(ctx)
	}()
	var retErr error
	go func() {
		defer wg.Done()
		_, retErr = f.svc.Return(ctx, loan.ID)
	}()
	wg.Wait()
	require.NoError(t, retErr)

	got, err := f.ledger.Get(loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanReturned, got.Status)
	require.NotNil(t, got.FineAmount)
	require.Equal(t, 2.0, *got.FineAmount)
	require.Equal(t, int64(1), f.available(t, bookID))
}
