package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/hersaheli/saheli/internal/db"
	"github.com/hersaheli/saheli/internal/services"
)

func RunSeedCommand(dbPath string, out io.Writer) error {
	database, closeDatabase, err := openDatabase(dbPath)
	if err != nil {
		return err
	}
	defer closeDatabase()

	symptomCount, contentCount, err := SeedCatalogs(db.NewRepositories(database))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d symptoms and %d content items\n", symptomCount, contentCount)
	return nil
}

// SeedCatalogs fills the symptom catalogue and the static content library.
func SeedCatalogs(repositories *db.Repositories) (int, int, error) {
	symptomCount, err := services.NewSymptomService(repositories.Symptoms).SeedDefaultSymptoms()
	if err != nil {
		return 0, 0, fmt.Errorf("seed symptoms: %w", err)
	}
	contentCount, err := services.NewContentService(repositories.Content).SeedDefaultContent()
	if err != nil {
		return 0, 0, fmt.Errorf("seed content: %w", err)
	}
	return symptomCount, contentCount, nil
}

func RunPurgeTokensCommand(dbPath string, now time.Time, out io.Writer) error {
	database, closeDatabase, err := openDatabase(dbPath)
	if err != nil {
		return err
	}
	defer closeDatabase()

	removed, err := services.NewSessionService(db.NewTokenRepository(database)).PurgeExpired(now)
	if err != nil {
		return fmt.Errorf("purge revoked tokens: %w", err)
	}
	fmt.Fprintf(out, "Removed %d expired token records\n", removed)
	return nil
}

func RunMigrationStatusCommand(dbPath string, out io.Writer) error {
	database, closeDatabase, err := openDatabase(dbPath)
	if err != nil {
		return err
	}
	defer closeDatabase()

	applied, err := db.AppliedMigrations(database)
	if err != nil {
		return err
	}
	for _, migration := range applied {
		fmt.Fprintf(out, "%s  %s  %s\n", migration.Version, migration.AppliedAt.UTC().Format(time.RFC3339), migration.Name)
	}
	return nil
}
