package db

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultPath is where bastionctl keeps its state database unless told otherwise.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".bastionctl/state.db")
}

// Open opens (and if needed creates) the state database at path and migrates
// the schema. It returns the database handle so callers can wire repositories
// explicitly instead of going through a package-level instance.
func Open(path string) (*gorm.DB, error) {
	if err := createDBDirectory(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to open state database")
		return nil, err
	}

	if err := gdb.AutoMigrate(&Token{}); err != nil {
		log.Error().Err(err).Msg("Failed to auto-migrate database")
		return nil, err
	}

	configureLogger(gdb)

	log.Info().Str("path", path).Msg("State database initialized successfully")
	return gdb, nil
}

// createDBDirectory checks if the database directory exists and creates it if it doesn't.
func createDBDirectory(path string) error {
	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			log.Error().Err(err).Msg("Failed to create database directory")
			return err
		}
	}
	return nil
}

// configureLogger configures the GORM logger based on the global zerolog level.
func configureLogger(gdb *gorm.DB) {
	if zerolog.GlobalLevel() == zerolog.Disabled {
		gdb.Logger = gdb.Logger.LogMode(0) // Silent mode
	} else {
		gdb.Logger = gdb.Logger.LogMode(4) // Debug mode
	}
}

// Close closes the underlying database connection.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get raw database connection")
		return err
	}
	return sqlDB.Close()
}
