// Command seed inserts the predefined global categories into an empty store.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"expensebook/internal/database"
	"expensebook/internal/services"
)

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
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dbURL := fs.String("db", os.Getenv("DATABASE_URL"), "Store URI (defaults to $DATABASE_URL)")
	migrationsPath := fs.String("migrations", "file://migrations", "Migration source for PostgreSQL stores")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbURL == "" {
		return fmt.Errorf("missing store URI: set DATABASE_URL or pass -db")
	}

	manager, err := database.Open(*dbURL, *migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer manager.Close()

	categories := services.NewCategoryService(manager.DB())
	inserted, err := categories.SeedGlobalCategories(context.Background(), services.PredefinedCategories())
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if inserted == 0 {
		fmt.Fprintln(stdout, "Global categories already present, nothing to seed")
		return nil
	}
	fmt.Fprintf(stdout, "Seeded %d global categories\n", inserted)
	return nil
}
