package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

func openRepositoriesForTest(t *testing.T) (*Repositories, *gorm.DB) {
	t.Helper()

	database := openMigratedTestDatabase(t, filepath.Join(t.TempDir(), "saheli-repositories.db"))
	return NewRepositories(database), database
}

func createUserForRepositoryTest(t *testing.T, repositories *Repositories, username string) uint {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	profile := models.UserProfile{Name: username, AverageCycle: models.DefaultCycleLength, SelectedMode: models.ModeMenstrual}
	if err := repositories.Users.CreateWithProfile(&user, &profile); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user.ID
}

func repositoryTestDay(t *testing.T, raw string) time.Time {
	t.Helper()

	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}

func TestCycleRepositoryMutateUserCyclesSkipsEmptyChangeSet(t *testing.T) {
	repositories, database := openRepositoriesForTest(t)
	userID := createUserForRepositoryTest(t, repositories, "cycle_idle")

	start := repositoryTestDay(t, "2026-01-01")
	if _, err := repositories.Cycles.MutateUserCycles(userID, func([]models.Cycle) (models.CycleChanges, error) {
		return models.CycleChanges{Create: []models.Cycle{{StartDate: start}}}, nil
	}); err != nil {
		t.Fatalf("create open cycle: %v", err)
	}
	stamp := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := database.Model(&models.Cycle{}).Where("user_id = ?", userID).UpdateColumn("updated_at", stamp).Error; err != nil {
		t.Fatalf("stamp cycle: %v", err)
	}

	applied, err := repositories.Cycles.MutateUserCycles(userID, func(current []models.Cycle) (models.CycleChanges, error) {
		if len(current) != 1 {
			t.Fatalf("expected one cycle, got %d", len(current))
		}
		return models.CycleChanges{}, nil
	})
	if err != nil {
		t.Fatalf("empty mutation: %v", err)
	}
	if !applied.IsEmpty() {
		t.Fatalf("expected empty applied changes, got %+v", applied)
	}

	cycles, err := repositories.Cycles.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cycles: %v", err)
	}
	if len(cycles) != 1 || !cycles[0].UpdatedAt.Equal(stamp) {
		t.Fatalf("expected untouched cycle, got %+v", cycles)
	}
}

func TestCycleRepositoryMutateUserCyclesAppliesChangeSet(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)
	userID := createUserForRepositoryTest(t, repositories, "cycle_owner")

	start := repositoryTestDay(t, "2026-01-01")
	end := repositoryTestDay(t, "2026-01-05")
	_, err := repositories.Cycles.MutateUserCycles(userID, func(current []models.Cycle) (models.CycleChanges, error) {
		if len(current) != 0 {
			t.Fatalf("expected no cycles, got %d", len(current))
		}
		return models.CycleChanges{Create: []models.Cycle{{StartDate: start, EndDate: &end}}}, nil
	})
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}

	cycles, err := repositories.Cycles.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cycles: %v", err)
	}
	if len(cycles) != 1 {
		t.Fatalf("expected one cycle, got %d", len(cycles))
	}
	if !cycles[0].StartDate.Equal(start) || cycles[0].EndDate == nil || !cycles[0].EndDate.Equal(end) {
		t.Fatalf("unexpected stored cycle: %+v", cycles[0])
	}

	newEnd := repositoryTestDay(t, "2026-01-03")
	_, err = repositories.Cycles.MutateUserCycles(userID, func(current []models.Cycle) (models.CycleChanges, error) {
		updated := current[0]
		updated.EndDate = &newEnd
		tailStart := repositoryTestDay(t, "2026-01-05")
		return models.CycleChanges{
			Update: []models.Cycle{updated},
			Create: []models.Cycle{{StartDate: tailStart, EndDate: &end}},
		}, nil
	})
	if err != nil {
		t.Fatalf("split cycle: %v", err)
	}

	cycles, err = repositories.Cycles.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cycles after split: %v", err)
	}
	if len(cycles) != 2 {
		t.Fatalf("expected two cycles after split, got %d", len(cycles))
	}
	if !cycles[0].EndDate.Equal(newEnd) || !cycles[1].StartDate.Equal(repositoryTestDay(t, "2026-01-05")) {
		t.Fatalf("unexpected cycles after split: %+v", cycles)
	}

	_, err = repositories.Cycles.MutateUserCycles(userID, func(current []models.Cycle) (models.CycleChanges, error) {
		return models.CycleChanges{Delete: []uint{current[1].ID}}, nil
	})
	if err != nil {
		t.Fatalf("delete cycle: %v", err)
	}
	cycles, err = repositories.Cycles.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cycles after delete: %v", err)
	}
	if len(cycles) != 1 {
		t.Fatalf("expected one cycle after delete, got %d", len(cycles))
	}
}

func TestCycleRepositoryRejectsSecondOpenCycle(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)
	userID := createUserForRepositoryTest(t, repositories, "open_owner")
	otherUserID := createUserForRepositoryTest(t, repositories, "other_owner")

	openCycle := func(owner uint, raw string) error {
		_, err := repositories.Cycles.MutateUserCycles(owner, func([]models.Cycle) (models.CycleChanges, error) {
			return models.CycleChanges{Create: []models.Cycle{{StartDate: repositoryTestDay(t, raw)}}}, nil
		})
		return err
	}

	if err := openCycle(userID, "2026-02-01"); err != nil {
		t.Fatalf("open first cycle: %v", err)
	}
	if err := openCycle(otherUserID, "2026-02-01"); err != nil {
		t.Fatalf("expected another user to open a cycle, got %v", err)
	}

	err := openCycle(userID, "2026-03-01")
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error for second open cycle, got %v", err)
	}

	cycles, err := repositories.Cycles.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cycles: %v", err)
	}
	if len(cycles) != 1 {
		t.Fatalf("expected rejected cycle to be rolled back, got %d cycles", len(cycles))
	}
}

func TestCycleRepositoryPlanErrorRollsBack(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)
	userID := createUserForRepositoryTest(t, repositories, "rollback_owner")

	planErr := errors.New("plan rejected")
	_, err := repositories.Cycles.MutateUserCycles(userID, func([]models.Cycle) (models.CycleChanges, error) {
		return models.CycleChanges{}, planErr
	})
	if !errors.Is(err, planErr) {
		t.Fatalf("expected plan error, got %v", err)
	}
}

func TestCycleRepositoryListRecentCompletedSkipsOpenCycle(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)
	userID := createUserForRepositoryTest(t, repositories, "recent_owner")

	firstEnd := repositoryTestDay(t, "2026-01-05")
	secondEnd := repositoryTestDay(t, "2026-02-03")
	_, err := repositories.Cycles.MutateUserCycles(userID, func([]models.Cycle) (models.CycleChanges, error) {
		return models.CycleChanges{Create: []models.Cycle{
			{StartDate: repositoryTestDay(t, "2026-01-01"), EndDate: &firstEnd},
			{StartDate: repositoryTestDay(t, "2026-01-29"), EndDate: &secondEnd},
			{StartDate: repositoryTestDay(t, "2026-02-26")},
		}}, nil
	})
	if err != nil {
		t.Fatalf("seed cycles: %v", err)
	}

	completed, err := repositories.Cycles.ListRecentCompleted(userID, 6)
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 2 || !completed[0].StartDate.Equal(repositoryTestDay(t, "2026-01-29")) {
		t.Fatalf("expected two completed cycles newest first, got %+v", completed)
	}

	recent, err := repositories.Cycles.ListRecent(userID, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 2 || recent[0].EndDate != nil {
		t.Fatalf("expected open cycle first in recent list, got %+v", recent)
	}
}

func TestDailyLogRepositorySaveWithSymptoms(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)
	userID := createUserForRepositoryTest(t, repositories, "log_owner")

	symptoms, err := repositories.Symptoms.ResolveNames([]string{"Cramps", "cramps", "Headache"})
	if err != nil {
		t.Fatalf("resolve symptoms: %v", err)
	}
	if len(symptoms) != 2 {
		t.Fatalf("expected case-insensitive names to collapse to two symptoms, got %+v", symptoms)
	}

	day := repositoryTestDay(t, "2026-02-10")
	pain := 3
	entry := models.DailyLog{UserID: userID, Date: day, PainLevel: &pain, Symptoms: symptoms}
	if err := repositories.DailyLogs.SaveWithSymptoms(&entry, true); err != nil {
		t.Fatalf("create daily log: %v", err)
	}

	stored, found, err := repositories.DailyLogs.FindByUserAndDayRange(userID, day, day.AddDate(0, 0, 1))
	if err != nil || !found {
		t.Fatalf("expected stored daily log, found=%t err=%v", found, err)
	}
	if len(stored.Symptoms) != 2 {
		t.Fatalf("expected two symptoms, got %+v", stored.Symptoms)
	}

	notes := "rest day"
	stored.Notes = &notes
	stored.Symptoms = nil
	if err := repositories.DailyLogs.SaveWithSymptoms(&stored, false); err != nil {
		t.Fatalf("update daily log without symptoms: %v", err)
	}
	reloaded, _, err := repositories.DailyLogs.FindByUserAndDayRange(userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("reload daily log: %v", err)
	}
	if len(reloaded.Symptoms) != 2 {
		t.Fatalf("expected symptoms untouched, got %+v", reloaded.Symptoms)
	}
	if reloaded.Notes == nil || *reloaded.Notes != notes {
		t.Fatalf("expected notes to be stored, got %v", reloaded.Notes)
	}

	reloaded.Symptoms = []models.Symptom{}
	if err := repositories.DailyLogs.SaveWithSymptoms(&reloaded, true); err != nil {
		t.Fatalf("clear symptoms: %v", err)
	}
	cleared, _, err := repositories.DailyLogs.FindByUserAndDayRange(userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("reload cleared daily log: %v", err)
	}
	if len(cleared.Symptoms) != 0 {
		t.Fatalf("expected symptoms cleared, got %+v", cleared.Symptoms)
	}

	catalogue, err := repositories.Symptoms.List()
	if err != nil {
		t.Fatalf("list symptoms: %v", err)
	}
	if len(catalogue) != 2 {
		t.Fatalf("expected symptoms to survive log edits, got %+v", catalogue)
	}
}

func TestDailyLogRepositoryListByUserRangeIsHalfOpen(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)
	userID := createUserForRepositoryTest(t, repositories, "range_owner")

	for _, raw := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		entry := models.DailyLog{UserID: userID, Date: repositoryTestDay(t, raw)}
		if err := repositories.DailyLogs.SaveWithSymptoms(&entry, false); err != nil {
			t.Fatalf("create log %s: %v", raw, err)
		}
	}

	from := repositoryTestDay(t, "2026-03-02")
	to := repositoryTestDay(t, "2026-03-03")
	logs, err := repositories.DailyLogs.ListByUserRange(userID, &from, &to)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(logs) != 1 || !logs[0].Date.Equal(from) {
		t.Fatalf("expected only 2026-03-02, got %+v", logs)
	}
}

func TestSymptomRepositoryEnsureNamesIsIdempotent(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)

	created, err := repositories.Symptoms.EnsureNames([]string{"Cravings", "Acne"})
	if err != nil {
		t.Fatalf("ensure names: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected two created symptoms, got %d", created)
	}

	created, err = repositories.Symptoms.EnsureNames([]string{"CRAVINGS", "Acne"})
	if err != nil {
		t.Fatalf("ensure names again: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no new symptoms, got %d", created)
	}

	symptom, found, err := repositories.Symptoms.FindByName("cravings")
	if err != nil || !found {
		t.Fatalf("expected cravings lookup to succeed, found=%t err=%v", found, err)
	}
	if symptom.Name != "Cravings" {
		t.Fatalf("expected stored name to keep its casing, got %q", symptom.Name)
	}
}

func TestTokenRepositoryRevokeIsIdempotent(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)
	userID := createUserForRepositoryTest(t, repositories, "token_owner")

	expiresAt := time.Now().Add(time.Hour)
	for attempt := 0; attempt < 2; attempt++ {
		if err := repositories.Tokens.Revoke("token-1", userID, expiresAt); err != nil {
			t.Fatalf("revoke attempt %d: %v", attempt, err)
		}
	}

	revoked, err := repositories.Tokens.IsRevoked("token-1")
	if err != nil {
		t.Fatalf("check revoked: %v", err)
	}
	if !revoked {
		t.Fatal("expected token to be revoked")
	}

	purged, err := repositories.Tokens.PurgeExpired(expiresAt.Add(time.Minute))
	if err != nil {
		t.Fatalf("purge expired: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected one purged token, got %d", purged)
	}
}

func TestContentRepositoryListFiltersCaseInsensitively(t *testing.T) {
	repositories, _ := openRepositoriesForTest(t)

	week := 12
	if err := repositories.Content.CreateBatch([]models.StaticContent{
		{Title: "Hydration", Body: "Drink water", ContentType: models.ContentTip, RelevantMode: models.ModeMenstrual},
		{Title: "Week 12", Body: "Second trimester is near", ContentType: models.ContentGuide, RelevantMode: models.ModePregnancy, WeekOfPregnancy: &week},
	}); err != nil {
		t.Fatalf("seed content: %v", err)
	}

	items, err := repositories.Content.List(ContentFilter{Mode: "pregnancy", Type: "guide", Week: &week})
	if err != nil {
		t.Fatalf("list content: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Week 12" {
		t.Fatalf("expected only the week 12 guide, got %+v", items)
	}

	all, err := repositories.Content.List(ContentFilter{})
	if err != nil {
		t.Fatalf("list all content: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected two items, got %d", len(all))
	}
}
