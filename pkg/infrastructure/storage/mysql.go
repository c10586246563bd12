package storage

import (
	"database/sql"
	"embed"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MySQLStorage keeps entries in the kv_entry table.
type MySQLStorage struct {
	db *sqlx.DB
}

func NewMySQLStorage(dsn string) (*MySQLStorage, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MySQL")
	}
	if err := migrateUp(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &MySQLStorage{db: db}, nil
}

func (s *MySQLStorage) Get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, "SELECT entry_value FROM kv_entry WHERE entry_key = ?", key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to get key %s", key)
	}
	return value, true, nil
}

func (s *MySQLStorage) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv_entry (entry_key, entry_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)`,
		key, value,
	)
	return errors.Wrapf(err, "failed to set key %s", key)
}

func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

func migrateUp(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to open migrations")
	}
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to create migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return errors.Wrap(err, "failed to create migrator")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}
