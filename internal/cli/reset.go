package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hersaheli/saheli/internal/db"
	"github.com/hersaheli/saheli/internal/security"
	"github.com/hersaheli/saheli/internal/services"
)

func RunResetPasswordCommand(dbPath string, username string, out io.Writer) error {
	normalizedUsername := strings.TrimSpace(username)
	if normalizedUsername == "" {
		return errors.New("username is required")
	}

	database, closeDatabase, err := openDatabase(dbPath)
	if err != nil {
		return err
	}
	defer closeDatabase()

	temporaryPassword, err := security.TemporaryPassword(16)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	authService := services.NewAuthService(db.NewUserRepository(database))
	if err := authService.ResetPassword(normalizedUsername, temporaryPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", normalizedUsername)
		}
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}
