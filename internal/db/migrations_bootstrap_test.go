package db

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/glebarez/sqlite"
	embeddedmigrations "github.com/hersaheli/saheli/migrations"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openMigratedTestDatabase(t, filepath.Join(t.TempDir(), "saheli-clean.db"))

	assertEnergyColumnNullable(t, database)
	assertOpenCycleIndexIsPartial(t, database)
	assertEveryEmbeddedMigrationRecorded(t, database)

	for _, table := range []string{"pregnancy_profiles", "postpartum_mood_logs", "static_contents", "revoked_tokens"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s after migrations", table)
		}
	}
}

func TestOpenSQLiteUpgradesDatabaseWithoutMigrationHistory(t *testing.T) {
	for _, hotfixed := range []bool{false, true} {
		t.Run(fmt.Sprintf("energy column present=%t", hotfixed), func(t *testing.T) {
			databasePath := filepath.Join(t.TempDir(), "saheli-legacy.db")
			seedInitialSchemaOnly(t, databasePath, hotfixed)

			database := openMigratedTestDatabase(t, databasePath)
			assertEnergyColumnNullable(t, database)
			assertOpenCycleIndexIsPartial(t, database)
			assertEveryEmbeddedMigrationRecorded(t, database)

			var migrated struct {
				Mood        *string `gorm:"column:mood"`
				PainLevel   *int    `gorm:"column:pain_level"`
				EnergyLevel *int    `gorm:"column:energy_level"`
			}
			if err := database.Table("daily_logs").Where("notes = ?", "before-upgrade").First(&migrated).Error; err != nil {
				t.Fatalf("load upgraded daily log: %v", err)
			}
			if migrated.Mood == nil || *migrated.Mood != "SAD" {
				t.Fatalf("expected mood SAD to survive upgrade, got %v", migrated.Mood)
			}
			if migrated.PainLevel == nil || *migrated.PainLevel != 4 {
				t.Fatalf("expected pain_level 4 to survive upgrade, got %v", migrated.PainLevel)
			}
			if migrated.EnergyLevel != nil {
				t.Fatalf("expected energy_level to default to NULL, got %v", *migrated.EnergyLevel)
			}
		})
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "saheli-idempotent.db")

	first, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	before, err := AppliedMigrations(first)
	if err != nil {
		t.Fatalf("load applied migrations: %v", err)
	}
	firstSQLDB, err := first.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	second := openMigratedTestDatabase(t, databasePath)
	after, err := AppliedMigrations(second)
	if err != nil {
		t.Fatalf("reload applied migrations: %v", err)
	}
	if len(before) != len(after) {
		t.Fatalf("expected %d migration records after reboot, got %d", len(before), len(after))
	}
	for index := range before {
		if before[index].Version != after[index].Version || !before[index].AppliedAt.Equal(after[index].AppliedAt) {
			t.Fatalf("migration record %d changed between boots: before=%+v after=%+v", index, before[index], after[index])
		}
	}
}

func TestMigratorOrdersByNumericVersionAndSkipsForeignFiles(t *testing.T) {
	files := fstest.MapFS{
		"10_widgets_color.sql": {Data: []byte("ALTER TABLE widgets ADD COLUMN color TEXT;")},
		"2_widgets.sql":        {Data: []byte("-- widgets table\nCREATE TABLE widgets (id INTEGER PRIMARY KEY);")},
		"README.md":            {Data: []byte("not a migration")},
		"notes.sql":            {Data: []byte("SELECT 1;")},
	}
	database := openBareTestDatabase(t)
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	runner := migrator{files: files, now: func() time.Time { return fixed }}

	if err := runner.apply(database); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if !database.Migrator().HasColumn("widgets", "color") {
		t.Fatal("expected widgets.color after migrations")
	}

	applied, err := AppliedMigrations(database)
	if err != nil {
		t.Fatalf("load applied migrations: %v", err)
	}
	names := make([]string, 0, len(applied))
	for _, record := range applied {
		names = append(names, record.Name)
		if !record.AppliedAt.Equal(fixed) {
			t.Fatalf("expected applied_at %v, got %v", fixed, record.AppliedAt)
		}
	}
	if !reflect.DeepEqual(names, []string{"10_widgets_color.sql", "2_widgets.sql"}) {
		t.Fatalf("unexpected recorded migrations %v", names)
	}
}

func TestMigratorRejectsBrokenMigrationSets(t *testing.T) {
	sameVersion := fstest.MapFS{
		"3_first.sql":  {Data: []byte("SELECT 1;")},
		"3_second.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := newMigrator(sameVersion).load(); err == nil || !strings.Contains(err.Error(), "duplicate migration version 3") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}

	empty := fstest.MapFS{"4_empty.sql": {Data: []byte("-- nothing yet\n")}}
	if _, err := newMigrator(empty).load(); !errors.Is(err, errEmptyMigration) {
		t.Fatalf("expected empty migration error, got %v", err)
	}
}

func TestSplitSQLStatementsDropsCommentLines(t *testing.T) {
	statements := splitSQLStatements("-- header\nCREATE TABLE a (id INTEGER);\n\n  -- indented comment\nCREATE INDEX idx_a ON a(id);\n")
	want := []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX idx_a ON a(id)"}
	if !reflect.DeepEqual(statements, want) {
		t.Fatalf("splitSQLStatements = %q, want %q", statements, want)
	}
}

func openMigratedTestDatabase(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	closeOnCleanup(t, database)
	return database
}

func openBareTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bare.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open bare sqlite: %v", err)
	}
	closeOnCleanup(t, database)
	return database
}

func closeOnCleanup(t *testing.T, database *gorm.DB) {
	t.Helper()

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
}

// seedInitialSchemaOnly mimics a database created from 001_init.sql before migration history existed.
func seedInitialSchemaOnly(t *testing.T, databasePath string, withEnergyColumn bool) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open legacy sqlite: %v", err)
	}
	initSQL, err := fs.ReadFile(embeddedmigrations.Schema, "001_init.sql")
	if err != nil {
		t.Fatalf("read 001 migration: %v", err)
	}
	for _, statement := range splitSQLStatements(string(initSQL)) {
		if err := database.Exec(statement).Error; err != nil {
			t.Fatalf("apply 001 statement %q: %v", statement, err)
		}
	}
	if withEnergyColumn {
		if err := database.Exec(`ALTER TABLE daily_logs ADD COLUMN energy_level INTEGER`).Error; err != nil {
			t.Fatalf("add energy_level column: %v", err)
		}
	}

	if err := database.Exec(
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		"early_user", "hash",
	).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if err := database.Exec(
		`INSERT INTO daily_logs (user_id, date, mood, pain_level, notes, created_at, updated_at)
		 SELECT id, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP FROM users WHERE username = ?`,
		"2026-01-10", "SAD", 4, "before-upgrade", "early_user",
	).Error; err != nil {
		t.Fatalf("insert daily log: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open legacy sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close legacy sql db: %v", err)
	}
}

func assertEnergyColumnNullable(t *testing.T, database *gorm.DB) {
	t.Helper()

	var columns []struct {
		Name    string `gorm:"column:name"`
		NotNull int    `gorm:"column:notnull"`
	}
	if err := database.Raw(`PRAGMA table_info("daily_logs")`).Scan(&columns).Error; err != nil {
		t.Fatalf("load daily_logs columns: %v", err)
	}
	for _, column := range columns {
		if column.Name == "energy_level" {
			if column.NotNull == 1 {
				t.Fatal("expected daily_logs.energy_level to be nullable")
			}
			return
		}
	}
	t.Fatal("expected daily_logs.energy_level column after migrations")
}

func assertOpenCycleIndexIsPartial(t *testing.T, database *gorm.DB) {
	t.Helper()

	var row struct {
		SQL string `gorm:"column:sql"`
	}
	if err := database.Raw(`SELECT sql FROM sqlite_master WHERE type = 'index' AND name = ?`, "uidx_cycles_user_open").Scan(&row).Error; err != nil {
		t.Fatalf("load open cycle index: %v", err)
	}
	definition := strings.ToLower(strings.Join(strings.Fields(row.SQL), " "))
	if !strings.Contains(definition, "where end_date is null") {
		t.Fatalf("expected open cycle index to be partial on end_date is null, got %q", row.SQL)
	}
}

func assertEveryEmbeddedMigrationRecorded(t *testing.T, database *gorm.DB) {
	t.Helper()

	migrations, err := newMigrator(embeddedmigrations.Schema).load()
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	applied, err := AppliedMigrations(database)
	if err != nil {
		t.Fatalf("load applied migrations: %v", err)
	}
	if len(applied) != len(migrations) {
		t.Fatalf("expected %d applied migrations, got %d", len(migrations), len(applied))
	}
	for index, migration := range migrations {
		if applied[index].Version != migration.version {
			t.Fatalf("applied migration %d = %s, want %s", index, applied[index].Version, migration.version)
		}
	}
}
