package database

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the embedded SQLite store. TranslateError is on so unique
// violations surface as gorm.ErrDuplicatedKey regardless of driver wording.
func Connect() {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "data/facturacion.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("could not create database directory")
		}
	}

	db, err := Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("could not connect to database")
	}
	DB = db
}

// Open returns a GORM handle for the given SQLite path (":memory:" works too).
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
