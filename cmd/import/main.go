package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"examengine/internal/config"
	"examengine/internal/database"
	"examengine/internal/repository"
	"examengine/internal/service"
)

func main() {
	filePath := flag.String("file", "", "path to the CSV file to import")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file questions.csv")
		os.Exit(2)
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	file, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *filePath, err)
	}
	defer file.Close()

	questionRepo := repository.NewQuestionRepository(db)
	deckRepo := repository.NewDeckRepository(db)
	importService := service.NewImportService(db, questionRepo, deckRepo)

	result, err := importService.ImportCSV(file)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Rows processed:     %d\n", result.TotalRows)
	fmt.Printf("Questions inserted: %d\n", result.Inserted)
	fmt.Printf("Duplicates skipped: %d\n", result.DuplicatesSkipped)
	fmt.Printf("Decks created:      %d\n", len(result.DecksCreated))
	for _, name := range result.DecksCreated {
		fmt.Printf("  - %s\n", name)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("Row errors:         %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
		os.Exit(1)
	}
}
