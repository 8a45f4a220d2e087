package db

import (
	"context"
	"fmt"
)

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// ParseType validates the DB_TYPE value from the environment.
func ParseType(s string) (DBType, error) {
	switch DBType(s) {
	case Postgres, Mongo:
		return DBType(s), nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q (want postgres or mongo)", s)
	}
}

type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
