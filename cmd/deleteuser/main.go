// Command deleteuser removes a test account created by end-to-end runs.
//
//	deleteuser someone@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"expensebook/internal/database"
	"expensebook/internal/services"
)

const testEmailDomain = "@example.com"

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("deleteuser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dbURL := fs.String("db", os.Getenv("DATABASE_URL"), "Store URI (defaults to $DATABASE_URL)")
	migrationsPath := fs.String("migrations", "file://migrations", "Migration source for PostgreSQL stores")

	if err := fs.Parse(args); err != nil {
		return err
	}

	email := fs.Arg(0)
	if email == "" {
		fmt.Fprintln(stdout, "Usage: deleteuser [-db <uri>] <email>")
		return fmt.Errorf("email required for login")
	}
	if !strings.HasSuffix(email, testEmailDomain) {
		return fmt.Errorf("all test emails must end in %s", testEmailDomain)
	}
	if *dbURL == "" {
		return fmt.Errorf("missing store URI: set DATABASE_URL or pass -db")
	}

	manager, err := database.Open(*dbURL, *migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer manager.Close()

	users := services.NewUserService(manager.DB())
	deleted, err := users.DeleteUserByEmail(context.Background(), email)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if !deleted {
		fmt.Fprintln(stdout, "User not found, so no need to delete")
		return nil
	}
	fmt.Fprintf(stdout, "Deleted user %s\n", email)
	return nil
}
