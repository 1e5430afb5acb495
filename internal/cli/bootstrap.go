package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hersaheli/saheli/internal/db"
	"github.com/hersaheli/saheli/internal/services"
)

// RunBootstrapUserCommand creates the first account. An empty password is read from stdin
// without echo.
func RunBootstrapUserCommand(dbPath string, username string, password string, stdin *os.File, out io.Writer) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("username is required")
	}
	if password == "" {
		fmt.Fprint(out, "Password: ")
		raw, err := readPasswordNoEcho(stdin)
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	}

	database, closeDatabase, err := openDatabase(dbPath)
	if err != nil {
		return err
	}
	defer closeDatabase()

	authService := services.NewAuthService(db.NewUserRepository(database))
	created, err := authService.EnsureUser(username, password)
	if err != nil {
		return fmt.Errorf("bootstrap user: %w", err)
	}

	if created {
		fmt.Fprintf(out, "Created user %s\n", strings.TrimSpace(username))
	} else {
		fmt.Fprintf(out, "User %s already exists, nothing to do\n", strings.TrimSpace(username))
	}
	return nil
}
