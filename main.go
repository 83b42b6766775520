// Package main library circulation API.
//
// @title           Library Circulation API
// @version         1.0
// @description     book catalog, borrower registry and loan circulation.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"librarycirc/app/echoServer"
	bookctrl "librarycirc/app/echoServer/controller/book"
	borrowerctrl "librarycirc/app/echoServer/controller/borrower"
	loanctrl "librarycirc/app/echoServer/controller/loan"
	reportctrl "librarycirc/app/echoServer/controller/report"
	"librarycirc/app/echoServer/validation"
	"librarycirc/config"
	borrowerrepo "librarycirc/repository/borrower"
	catalogrepo "librarycirc/repository/catalog"
	ledgerrepo "librarycirc/repository/ledger"
	"librarycirc/service/circulation"
	"librarycirc/service/reports"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// stores
	catalog := catalogrepo.New()
	registry := borrowerrepo.New()
	ledger := ledgerrepo.New()

	// services
	circCfg := circulation.Config{
		LoanPeriod:     cfg.LoanPeriod(),
		FineRatePerDay: cfg.FineRatePerDay,
	}
	circ := circulation.New(catalog, registry, ledger, circCfg)
	sweeper := circulation.NewSweeper(ledger, circCfg)
	sweeper.OnSweep = func(n int) {
		if n > 0 {
			log.Info("overdue sweep", "transitioned", n)
		}
	}
	reporting := reports.New(catalog, registry, ledger)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Store: catalog, V: v, Log: log}
	borrowerC := &borrowerctrl.Controller{Registry: registry, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: circ, Sweeper: sweeper, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: reporting, Log: log}

	// periodic sweeper
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.SweepInterval > 0 {
		go sweeper.Run(ctx, cfg.SweepInterval)
	}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:     bookC,
		Borrower: borrowerC,
		Loan:     loanC,
		Report:   reportC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env, "sweep_interval", cfg.SweepInterval.String())

	e.Logger.Fatal(e.Start(":" + port))
}
