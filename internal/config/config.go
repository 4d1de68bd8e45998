package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultRunAddress      = ":8080"
	DefaultDatabaseURI     = ""
	DefaultLocalDBPath     = "./.taskmarket/taskmarket.db"
	DefaultSnapshotAddress = ""
	DefaultLedgerAddress   = ""
	DefaultSyncInterval    = 3 * time.Second
	DefaultSyncRetryBase   = 1 * time.Second
	DefaultSyncRetryMax    = 30 * time.Second
	DefaultSyncMaxFailures = 5
	DefaultStrictDispatch  = true
)

type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	LocalDBPath     string        `env:"LOCAL_DB_PATH"`
	SnapshotAddress string        `env:"SNAPSHOT_ADDRESS"`
	LedgerAddress   string        `env:"LEDGER_ADDRESS"`
	SyncInterval    time.Duration `env:"SYNC_INTERVAL"`
	SyncRetryBase   time.Duration `env:"SYNC_RETRY_BASE"`
	SyncRetryMax    time.Duration `env:"SYNC_RETRY_MAX"`
	SyncMaxFailures int           `env:"SYNC_MAX_FAILURES"`
	StrictDispatch  bool          `env:"STRICT_DISPATCH"`
}

func Read() (Config, error) {
	config := Config{}

	flag.StringVar(&config.RunAddress, "a", DefaultRunAddress, "Server run address")
	flag.StringVar(&config.DatabaseURI, "d", DefaultDatabaseURI, "Database connect string (empty - local sqlite file)")
	flag.StringVar(&config.LocalDBPath, "f", DefaultLocalDBPath, "Local durable storage path")
	flag.StringVar(&config.SnapshotAddress, "r", DefaultSnapshotAddress, "Remote snapshot resource protocol://hostname:port (empty - no background sync)")
	flag.StringVar(&config.LedgerAddress, "l", DefaultLedgerAddress, "Financial ledger address (empty - fines are only logged)")

	flag.DurationVar(&config.SyncInterval, "i", DefaultSyncInterval, "Background sync interval (e.g. 3s, 1m)")
	flag.DurationVar(&config.SyncRetryBase, "b", DefaultSyncRetryBase, "Base delay between sync retries")
	flag.DurationVar(&config.SyncRetryMax, "m", DefaultSyncRetryMax, "Max delay between sync retries")
	flag.IntVar(&config.SyncMaxFailures, "n", DefaultSyncMaxFailures, "Consecutive sync failures before the loop stops")
	flag.BoolVar(&config.StrictDispatch, "s", DefaultStrictDispatch, "Report unknown orders and broken preconditions as errors")

	flag.Parse()

	err := env.Parse(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
