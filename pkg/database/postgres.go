package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"github.com/Pauline-hiez/reservation-salle/config"
)

type Database interface {
	GetDB() *sql.DB
	Close() error
}

type postgres struct {
	db *sql.DB
}

func NewPostgresDatabase(cfg *config.Config) (Database, error) {
	db, err := sql.Open("postgres", cfg.DatabaseDSN())
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	fmt.Printf("Connected to DB %s successfully on port %d\n", cfg.Database.DBName, cfg.Database.Port)

	return &postgres{db: db}, nil
}

func (p *postgres) GetDB() *sql.DB {
	return p.db
}

func (p *postgres) Close() error {
	return p.db.Close()
}
