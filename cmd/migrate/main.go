// Command migrate applies the database schema.
package main

import (
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Connect only migrates outside production; run it explicitly here so
	// the command works against production databases too.
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed")
}
