package postgres

import (
	"testing"
	"time"

	"job-match/internal/config"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBUser:     "app",
		DBPassword: "p@ss",
		DBName:     "jobs",
		DBSSLMode:  "disable",
	})
	want := "host=db port=5432 user=app password=p@ss dbname=jobs sslmode=disable"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}

func TestPoolConfig_AppliesLimits(t *testing.T) {
	pcfg, err := PoolConfig(config.DatabaseConfig{
		DBHost:              "db",
		DBPort:              "5432",
		DBUser:              "app",
		DBName:              "jobs",
		DBSSLMode:           "disable",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        8,
		PoolMaxConnIdleTime: time.Minute,
	})
	if err != nil {
		t.Fatalf("PoolConfig: %v", err)
	}
	if pcfg.MaxConns != 8 {
		t.Fatalf("MaxConns = %d, want 8", pcfg.MaxConns)
	}
	if pcfg.MaxConnIdleTime != time.Minute {
		t.Fatalf("MaxConnIdleTime = %v", pcfg.MaxConnIdleTime)
	}
	if pcfg.ConnConfig.ConnectTimeout != 3*time.Second {
		t.Fatalf("ConnectTimeout = %v", pcfg.ConnConfig.ConnectTimeout)
	}
	if pcfg.ConnConfig.RuntimeParams["application_name"] != applicationName {
		t.Fatalf("application_name = %q", pcfg.ConnConfig.RuntimeParams["application_name"])
	}
}

func TestPoolConfig_RejectsBadPort(t *testing.T) {
	if _, err := PoolConfig(config.DatabaseConfig{DBHost: "db", DBPort: "not-a-port"}); err == nil {
		t.Fatal("expected error")
	}
}
