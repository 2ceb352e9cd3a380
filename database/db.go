package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// Connect opens the PostgreSQL connection described by DATABASE_URL. Settings
// are tuned for a serverless Postgres (Neon): no idle connections held onto a
// suspended compute, and a small open-connection cap for a read-only API.
func Connect() (*sql.DB, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		log.WithError(err).Warn("database ping failed, proceeding anyway")
	}

	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(10)

	log.Info("connected to PostgreSQL")
	return db, nil
}
