// Command seed creates a user account for local development. It prompts
// for an email and a password (read without echo), applies pending
// migrations, and prints the bearer token of the new account.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/commently/commently/internal/server/config"
	"github.com/commently/commently/internal/server/repositories/repomanager"
	"github.com/commently/commently/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	ctx := context.Background()
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email\n> ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)

	fmt.Print("Enter password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	token, err := services.NewUserService(db, rm, cfg).SignUp(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("signup error: %w", err)
	}

	fmt.Printf("created %s\ntoken: %s\n", email, token)
	return nil
}
