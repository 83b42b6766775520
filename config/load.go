package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

func Load() App {
	cfg := App{
		Port:           getenv("APP_PORT", "8080"),
		Env:            getenv("APP_ENV", "dev"),
		LoanPeriodDays: getint("LOAN_PERIOD_DAYS", 14),
		FineRatePerDay: getfloat("FINE_RATE_PER_DAY", 1.0),
		SweepInterval:  getdur("SWEEP_INTERVAL", 10*time.Minute),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		slog.Warn("bad env value, using default", "key", k, "value", v)
		return def
	}
	return n
}

func getfloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		slog.Warn("bad env value, using default", "key", k, "value", v)
		return def
	}
	return f
}

func getdur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		slog.Warn("bad env value, using default", "key", k, "value", v)
		return def
	}
	return d
}
