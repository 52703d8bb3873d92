package config

import "time"

type StoreConfig interface {
	GetDatabaseDSN() string
	GetStoreTimeout() time.Duration
}

type Store struct{}

var _ StoreConfig = Store{}

// GetDatabaseDSN returns the PostgreSQL connection string for the account
// store. Empty means run with the in-memory store (development only).
func (Store) GetDatabaseDSN() string {
	return GetEnv("DATABASE_DSN", "")
}

// GetStoreTimeout bounds each account store round trip. On timeout the
// request fails closed.
func (Store) GetStoreTimeout() time.Duration {
	return getDurationEnv("STORE_TIMEOUT", 5*time.Second)
}
