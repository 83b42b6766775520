package echoServer

import (
	"librarycirc/app/echoServer/controller/book"
	"librarycirc/app/echoServer/controller/borrower"
	"librarycirc/app/echoServer/controller/loan"
	"librarycirc/app/echoServer/controller/report"

	"github.com/labstack/echo/v4"
)

type C struct {
	Book     *book.Controller
	Borrower *borrower.Controller
	Loan     *loan.Controller
	Report   *report.Controller
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")

	// Catalog
	v1.POST("/books", c.Book.Create)
	v1.GET("/books", c.Book.List)
	v1.GET("/books/:id", c.Book.Detail)

	// Borrowers
	v1.POST("/borrowers", c.Borrower.Register)
	v1.GET("/borrowers", c.Borrower.List)
	v1.GET("/borrowers/:id", c.Borrower.Detail)
	v1.GET("/borrowers/:id/loans", c.Loan.ByBorrower)

	// Circulation
	v1.POST("/loans", c.Loan.Issue)
	v1.POST("/loans/:id/return", c.Loan.Return)
	v1.GET("/loans", c.Loan.List)
	v1.GET("/loans/:id", c.Loan.Detail)

	// On-demand overdue sweep
	v1.POST("/sweeps", c.Loan.Sweep)

	// Reports
	v1.GET("/reports/summary", c.Report.Summary)
	v1.GET("/reports/overdue", c.Report.Overdue)
	v1.GET("/reports/borrowers", c.Report.Borrowers)
}
