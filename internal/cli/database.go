package cli

import (
	"fmt"

	"github.com/hersaheli/saheli/internal/db"
	"gorm.io/gorm"
)

func openDatabase(dbPath string) (*gorm.DB, func(), error) {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	closeDatabase := func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return database, closeDatabase, nil
}
