package config

import "time"

type App struct {
	Port           string        `env:"APP_PORT" default:"8080"`
	Env            string        `env:"APP_ENV" default:"dev"`
	LoanPeriodDays int           `env:"LOAN_PERIOD_DAYS" default:"14"`
	FineRatePerDay float64       `env:"FINE_RATE_PER_DAY" default:"1.0"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL" default:"10m"`
}

func (a App) LoanPeriod() time.Duration {
	return time.Duration(a.LoanPeriodDays) * 24 * time.Hour
}
